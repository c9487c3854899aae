package commands

import (
	"sheetfetch/internal/hashes"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var hashAlgorithm string

func init() {
	hashCmd.Flags().StringVarP(&hashAlgorithm, "algorithm", "a", string(hashes.MD5), "One of md5, sha1, sha256, sha384 or sha512.")
	rootCmd.AddCommand(hashCmd)
}

var hashCmd = &cobra.Command{
	Use:   "hash <text>",
	Short: "Shows the base64 encoded digest of a text.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputValue(cmd, func() (table.Cell, error) {
			digest, err := hashes.Compute(hashes.Algorithm(hashAlgorithm), args[0])
			return table.String(digest), err
		})
	},
}
