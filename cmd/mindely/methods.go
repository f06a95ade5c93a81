package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/mindely/internal/catalog"
	"github.com/verte-zerg/mindely/internal/config"
	"github.com/verte-zerg/mindely/internal/model"
	"github.com/verte-zerg/mindely/internal/store"
)

var (
	methodsFormat string

	addTitle       string
	addDescription string
	addFocus       int
	addBreak       int
	addToggle      bool
	addIcon        string
	addSteps       []string
	addBestFor     []string
)

func newMethodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List study methods",
		Args:  cobra.NoArgs,
		RunE:  runMethodsCmd,
	}
	cmd.Flags().StringVar(&methodsFormat, "format", catalog.FormatTable, "output format: table, yaml or json")
	return cmd
}

func runMethodsCmd(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	width := 0
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}
	if err := catalog.Write(cmd.OutOrStdout(), cat.Methods(), methodsFormat, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newMethodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "method",
		Short: "Manage custom study methods",
	}
	cmd.AddCommand(newMethodAddCmd())
	cmd.AddCommand(newMethodRemoveCmd())
	return cmd
}

func newMethodAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add or update a custom study method",
		Args:  cobra.ExactArgs(1),
		RunE:  runMethodAddCmd,
	}
	cmd.Flags().StringVar(&addTitle, "title", "", "display title (required)")
	cmd.Flags().StringVar(&addDescription, "description", "", "short description")
	cmd.Flags().IntVar(&addFocus, "focus", 0, "focus minutes (0 for no timer)")
	cmd.Flags().IntVar(&addBreak, "break", 0, "break minutes")
	cmd.Flags().BoolVar(&addToggle, "toggle", false, "allow switching between focus and break manually")
	cmd.Flags().StringVar(&addIcon, "icon", "", "icon glyph")
	cmd.Flags().StringArrayVar(&addSteps, "step", nil, "how-it-works step (repeatable)")
	cmd.Flags().StringSliceVar(&addBestFor, "best-for", nil, "comma-separated best-for tags")
	return cmd
}

func runMethodAddCmd(cmd *cobra.Command, args []string) error {
	method, err := buildCustomMethod(args[0])
	if err != nil {
		return err
	}
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		if err := st.SaveMethod(ctx, model.CustomMethod{StudyMethod: method, CreatedAt: time.Now()}); err != nil {
			return err
		}
		logErrf("Saved method %q\n", method.ID)
		return nil
	})
}

func buildCustomMethod(id string) (model.StudyMethod, error) {
	id = strings.TrimSpace(strings.ToLower(id))
	if catalog.IsBuiltin(id) {
		return model.StudyMethod{}, fmt.Errorf("%q is a built-in method; choose another id", id)
	}
	if addFocus < 0 || addBreak < 0 {
		return model.StudyMethod{}, fmt.Errorf("--focus and --break must not be negative")
	}
	method := model.StudyMethod{
		ID:              id,
		Title:           strings.TrimSpace(addTitle),
		Description:     strings.TrimSpace(addDescription),
		FullDescription: strings.TrimSpace(addDescription),
		HowItWorks:      trimAll(addSteps),
		BestFor:         trimAll(addBestFor),
		Icon:            strings.TrimSpace(addIcon),
		HasTimer:        addFocus > 0 || addBreak > 0,
		FocusMinutes:    addFocus,
		BreakMinutes:    addBreak,
		Custom:          true,
	}
	if addToggle && !method.HasTimer {
		return model.StudyMethod{}, fmt.Errorf("--toggle requires --focus and --break")
	}
	method.ModeToggle = addToggle
	if method.Icon == "" {
		method.Icon = catalog.DefaultCustomIcon
	}
	if err := catalog.ValidateMethod(method); err != nil {
		return model.StudyMethod{}, err
	}
	return method, nil
}

func newMethodRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom study method",
		Args:  cobra.ExactArgs(1),
		RunE:  runMethodRemoveCmd,
	}
}

func runMethodRemoveCmd(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(strings.ToLower(args[0]))
	if catalog.IsBuiltin(id) {
		return fmt.Errorf("%q is a built-in method and cannot be removed", id)
	}
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		if err := st.DeleteMethod(ctx, id); err != nil {
			if errors.Is(err, store.ErrMethodNotFound) {
				logErrln("Custom methods can be listed with: mindely methods")
			}
			return err
		}
		logErrf("Removed method %q\n", id)
		return nil
	})
}

func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(ctx, st)
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
