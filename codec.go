package main

import (
	"fmt"

	"shorturl/basecodec"
	"shorturl/config"
	"shorturl/shortid"

	"github.com/spf13/cobra"
)

var alphabet string

var encodeCmd = &cobra.Command{
	Use:   "encode N...",
	Short: "Print the short id of each integer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode SHORT_ID...",
	Short: "Print the integer each short id stands for",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

func init() {
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(&alphabet, "alphabet", "a", config.DefaultBaseChars, "symbols short ids are written in")
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	codec, err := basecodec.New(alphabet)
	if err != nil {
		return err
	}
	for _, arg := range args {
		n, err := basecodec.ParseInteger(arg)
		if err != nil {
			return err
		}
		id, err := shortid.FromInteger(codec, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id.IntegerForm(), id.ShortForm())
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	codec, err := basecodec.New(alphabet)
	if err != nil {
		return err
	}
	for _, arg := range args {
		id, err := shortid.New(codec, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", id.ShortForm(), id.IntegerForm())
	}
	return nil
}
