package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage item images",
}

var imageKind string

var imageUploadCmd = &cobra.Command{
	Use:   "upload <item-id> <file>",
	Short: "Replace an item image from a local file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return exitError(5, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(args[1]))
		if contentType == "" {
			return exitError(2, fmt.Errorf("cannot infer image type from %q", args[1]))
		}

		if err := client.UploadImage(ctx, args[0], imageKind, data, contentType); err != nil {
			return exitError(4, err)
		}
		printInfo("Uploaded %s image for %s\n", imageKind, args[0])
		return nil
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an item image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		if err := client.DeleteImage(ctx, args[0], imageKind); err != nil {
			return exitError(4, err)
		}
		printInfo("Deleted %s image for %s\n", imageKind, args[0])
		return nil
	},
}

func init() {
	imageCmd.PersistentFlags().StringVar(&imageKind, "kind", "Primary", "Image kind (Primary, Backdrop, Logo, ...)")

	imageCmd.AddCommand(imageUploadCmd)
	imageCmd.AddCommand(imageDeleteCmd)
	rootCmd.AddCommand(imageCmd)
}
