package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

func modFiles(ctx context.Context, domain string, modID int64) (*data.Files, error) {
	key := data.CompoundKey{Domain: domain, ModID: modID}.String()
	return data.Get(ctx, shared.cache, data.ModFiles, key, refreshFlag)
}

func printFileInfo(file *data.FileInfo) {
	fmt.Printf("\n%s\n", format.Header(file.Name))
	fmt.Printf("    %s @ %s\n", file.FileName, file.Version)
	fmt.Printf("    %s, uploaded %s\n", humanSize(file.SizeInBytes), file.UploadedTime)
	if file.IsPrimary {
		fmt.Println("    primary file")
	}
	if file.Description != "" {
		fmt.Printf("\n%s\n", format.Indent(file.Description))
	}
}

// humanSize renders a byte count with a sensible unit.
func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

var filesCmd = &cobra.Command{
	Use:   "files <id> [game]",
	Short: "Get the list of files for a specific mod",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		domain := gameArg(args, 1)
		files, err := modFiles(cmd.Context(), domain, modID)
		if err != nil {
			return err
		}
		if files == nil {
			fmt.Printf("No files found for %s/%d\n", domain, modID)
			return nil
		}
		if jsonOutput {
			return emitJSON(files)
		}

		rows := make([][]string, 0, len(files.Files))
		for _, f := range files.Files {
			primary := ""
			if f.IsPrimary {
				primary = "yes"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", f.FileID), f.Name, f.Version, humanSize(f.SizeInBytes), primary,
			})
		}
		format.Table(cmd.OutOrStdout(), []string{"id", "name", "version", "size", "primary"}, rows)
		return nil
	},
}

var primaryFileCmd = &cobra.Command{
	Use:   "primary-file <id> [game]",
	Short: "Get information about the mod's primary file, usefully formatted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		domain := gameArg(args, 1)
		files, err := modFiles(cmd.Context(), domain, modID)
		if err != nil {
			return err
		}
		if files == nil {
			fmt.Printf("No files found for %s/%d\n", domain, modID)
			return nil
		}
		primary := files.PrimaryFile()
		if primary == nil {
			fmt.Printf("No file is marked primary for %s/%d\n", domain, modID)
			return nil
		}
		if jsonOutput {
			return emitJSON(primary)
		}
		printFileInfo(primary)
		return nil
	},
}

var fileInfoCmd = &cobra.Command{
	Use:   "file-info <mod-id> <file-id> [game]",
	Short: "Get information about a specific mod file",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		fileID, err := modIDArg(args, 1)
		if err != nil {
			return err
		}
		domain := gameArg(args, 2)
		files, err := modFiles(cmd.Context(), domain, modID)
		if err != nil {
			return err
		}
		if files == nil {
			fmt.Printf("No files found for %s/%d\n", domain, modID)
			return nil
		}
		file := files.FileByID(fileID)
		if file == nil {
			fmt.Printf("Mod %s/%d has no file with id %d\n", domain, modID, fileID)
			return nil
		}
		if jsonOutput {
			return emitJSON(file)
		}
		printFileInfo(file)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(primaryFileCmd)
	rootCmd.AddCommand(fileInfoCmd)
}
