package cmd

import (
	"context"
	"fmt"
)

// PredictCmd runs a single prediction from the CLI.  The chatflow defaults to
// the pre-configured one when -c is omitted.
type PredictCmd struct {
	Chatflow string `short:"c" long:"chatflow" description:"Chatflow ID (defaults to the pre-configured one)"`
	Question string `short:"q" long:"question" description:"Question or prompt to send" required:"yes"`
}

func (c *PredictCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	chatflowID := c.Chatflow
	if chatflowID == "" {
		chatflowID = svc.Config().PinnedID()
	}
	if chatflowID == "" {
		return fmt.Errorf("chatflow must be provided via -c/--chatflow or pre-configured")
	}

	answer, err := svc.Predict(context.Background(), chatflowID, c.Question)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
