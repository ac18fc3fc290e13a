package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChatflowsCmd prints the remote chatflow listing after whitelist/blacklist
// filtering, in the order the remote returned it.
type ChatflowsCmd struct {
	JSON bool `long:"json" description:"print result as JSON"`
}

func (c *ChatflowsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	flows, err := svc.Chatflows(context.Background())
	if err != nil {
		return err
	}

	if c.JSON {
		data, _ := json.MarshalIndent(flows, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	for _, flow := range flows {
		fmt.Printf("%s\t%s\n", flow.ID, flow.Name)
	}
	return nil
}
