package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/source"
)

// sheetsCommand creates the sheets command.
func (c *CLI) sheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listSheets(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func listSheets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return source.SheetNames(f)
}

// templateCommand creates the template command.
func (c *CLI) templateCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "template <out.xlsx>",
		Short: "Write an empty input workbook",
		Long: `Write an empty input workbook with the expected column headers.

Fill in one device per row: its ID, name, IP address, VLAN, note and up to
three upstream parents. Then draw it with "netdraw render".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := writeTemplate(args[0], force)
			if err != nil {
				return err
			}
			printSuccess("Template written")
			printFile(path)
			printNewline()
			printNextStep("Draw it", appName+" render "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// writeTemplate writes the template to path, adding .xlsx when missing.
func writeTemplate(path string, force bool) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		path += ".xlsx"
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", errs.New(errs.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errs.Wrap(errs.ErrCodeSerializationIO, err, "create %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeSerializationIO, err, "create %s", path)
	}
	if err := source.WriteTemplate(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errs.Wrap(errs.ErrCodeSerializationIO, err, "close %s", path)
	}
	return path, nil
}
