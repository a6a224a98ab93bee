package cli

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"go.viam.com/pursuit/config"
)

// SchemaAction prints the json schema of scenario files.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c, "%s\n", out)
	return nil
}
