package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"service configuration YAML path or URL"`

	Serve     *ServeCmd     `command:"serve"      description:"Start MCP server exposing Flowise chatflows as tools"`
	Chatflows *ChatflowsCmd `command:"chatflows"  description:"List remote chatflows visible after filtering"`
	Predict   *PredictCmd   `command:"predict"    description:"Run a single prediction against a chatflow"`
	Call      *CallCmd      `command:"call"       description:"Invoke a registered tool by name"`
	ListTools *ListToolsCmd `command:"list-tools" description:"List all registered tools"`
	Tool      *ToolCmd      `command:"tool"       description:"Show detailed info about one tool"`
}

// Init instantiates the sub-command referenced by the first positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "chatflows":
		o.Chatflows = &ChatflowsCmd{}
	case "predict":
		o.Predict = &PredictCmd{}
	case "call":
		o.Call = &CallCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	}
}
