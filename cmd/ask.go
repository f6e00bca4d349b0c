package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DachengChen/ragask/form"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAskCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := rt.newController()
			ctrl.SetQuery(strings.Join(args, " "))

			err := ctrl.Submit(cmd.Context())
			switch {
			case errors.Is(err, form.ErrEmptyQuery):
				return errors.New("question is empty")
			case err != nil:
				// Details are in the log file; the user sees the fixed message.
				return errors.New(ctrl.Snapshot().Error)
			}

			rt.log.Event("query", "answered", zap.Int("answer_len", len(ctrl.Snapshot().Answer)))
			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Snapshot().Answer)
			return nil
		},
	}
}
