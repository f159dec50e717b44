package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashview/internal/errors"
	"github.com/vango-dev/hashview/pkg/router"
)

func routeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Encode and decode route tokens",
	}
	cmd.AddCommand(routeEncodeCmd(), routeDecodeCmd())
	return cmd
}

func routeEncodeCmd() *cobra.Command {
	var link bool

	cmd := &cobra.Command{
		Use:   "encode NAME [ARG...]",
		Short: "Print the token for a route",
		Long: `Print the token for a route. Each argument is parsed as JSON;
arguments that are not valid JSON are taken as strings.

Examples:
  hashview route encode showItem 42
  hashview route encode search '"red shoes"' '{"page":2}'
  hashview route encode --link home`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, parseArg(arg))
			}
			token, err := router.EncodeValues(args[0], values)
			if err != nil {
				return errors.New("H003").WithDetail(args[0]).Wrap(err)
			}
			if link {
				token = "#" + token
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().BoolVar(&link, "link", false, "Print the token as a fragment link")

	return cmd
}

func routeDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Print the route a token encodes",
		Long: `Print the route name and arguments a token encodes, as JSON.
A leading "#" is ignored.

Example:
  hashview route decode WyJob21lIixbXV0=`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if len(token) > 0 && token[0] == '#' {
				token = token[1:]
			}
			route, err := router.Decode(token)
			if err != nil {
				return errors.Classify(err)
			}
			out, err := json.Marshal(map[string]any{"name": route.Name, "args": route.Args})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func parseArg(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}
