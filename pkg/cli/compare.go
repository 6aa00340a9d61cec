package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/domain/version"
)

func cmdCompare() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"c"},
		Usage:     "Compare two version strings the way the report does",
		ArgsUsage: "<a> <b>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return goerr.New("compare takes exactly two versions", goerr.V("args", c.Args().Slice()))
			}

			a, b := c.Args().Get(0), c.Args().Get(1)
			fmt.Fprintln(color.Output, formatComparison(a, b, version.Compare(a, b)))
			return nil
		},
	}
}

var (
	olderColor = color.New(color.FgYellow, color.Bold)
	equalColor = color.New(color.FgGreen, color.Bold)
	newerColor = color.New(color.FgCyan, color.Bold)
)

func formatComparison(a, b string, result int) string {
	switch {
	case result < 0:
		return fmt.Sprintf("%s %s %s", a, olderColor.Sprint("<"), b)
	case result > 0:
		return fmt.Sprintf("%s %s %s", a, newerColor.Sprint(">"), b)
	default:
		return fmt.Sprintf("%s %s %s", a, equalColor.Sprint("=="), b)
	}
}
