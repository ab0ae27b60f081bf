package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/expenses-tracker/internal/adapter/http/dto"
	"github.com/iho/expenses-tracker/internal/adapter/render"
	"github.com/iho/expenses-tracker/internal/domain"
)

type viewFlags struct {
	filter string
	json   bool
	plain  bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter, "filter", "", "One-off filter: none, this-month, this-year, last-month, last-year")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON instead of markdown")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "Print raw markdown without terminal styling")
}

// resolve returns the filter to apply and whether it was given explicitly.
func (f *viewFlags) resolve() (domain.Filter, bool, error) {
	if f.filter == "" {
		return domain.NoFilter, false, nil
	}
	parsed, err := domain.ParseFilter(f.filter)
	if err != nil {
		return domain.NoFilter, false, err
	}
	return parsed, true, nil
}

func newAddCmd() *cobra.Command {
	var (
		entryType string
		amount    string
		date      string
		desc      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an income or expense entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				draft := domain.DefaultNewEntry(a.tracker.Today())

				typ, err := domain.ParseEntryType(entryType)
				if err != nil {
					return err
				}
				draft.Type = typ

				draft.Amount, err = decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}

				if date != "" {
					if draft.Date, err = domain.ParseDate(date); err != nil {
						return err
					}
				}
				draft.Description = desc

				entry, err := a.tracker.AddEntry(cmd.Context(), draft)
				if err != nil {
					return err
				}
				if err := a.tracker.Save(cmd.Context()); err != nil {
					return fmt.Errorf("save state: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), entry.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&entryType, "type", "expense", "Entry type: income or expense")
	cmd.Flags().StringVar(&amount, "amount", "", "Positive amount, e.g. 12.50")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&desc, "desc", "", "Free-text description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an entry by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.tracker.RemoveEntry(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := a.tracker.Save(cmd.Context()); err != nil {
					return fmt.Errorf("save state: %w", err)
				}
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, explicit, err := flags.resolve()
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				var entries []domain.Entry
				if explicit {
					entries, err = a.tracker.EntriesWithFilter(cmd.Context(), f)
				} else {
					f = a.tracker.Filter()
					entries, err = a.tracker.Entries(cmd.Context())
				}
				if err != nil {
					return err
				}

				if flags.json {
					return writeJSON(cmd.OutOrStdout(), dto.NewListEntriesResponse(f, entries))
				}
				return render.NewPrinter(cmd.OutOrStdout(), flags.plain).
					Print(render.EntriesTable(entries, f, a.cfg.DisplayCurrency))
			})
		},
	}
	flags.register(cmd)

	return cmd
}

func newStatsCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show total income, expenses and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, explicit, err := flags.resolve()
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				var s domain.Summary
				if explicit {
					s, err = a.tracker.SummaryWithFilter(cmd.Context(), f)
				} else {
					s, err = a.tracker.Summary(cmd.Context())
				}
				if err != nil {
					return err
				}

				if flags.json {
					return writeJSON(cmd.OutOrStdout(), dto.SummaryFromDomain(s))
				}
				return render.NewPrinter(cmd.OutOrStdout(), flags.plain).
					Print(render.Summary(s, a.cfg.DisplayCurrency))
			})
		},
	}
	flags.register(cmd)

	return cmd
}

func newFilterCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "filter [FILTER]",
		Short: "Show or set the persisted filter",
		Long: `Without an argument, list the filters and mark the active one.
With an argument (none, this-month, this-year, last-month, last-year), make it the active filter.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if len(args) == 1 {
					f, err := domain.ParseFilter(args[0])
					if err != nil {
						return err
					}
					if err := a.tracker.SetFilter(cmd.Context(), f); err != nil {
						return err
					}
					if err := a.tracker.Save(cmd.Context()); err != nil {
						return fmt.Errorf("save state: %w", err)
					}
				}

				return render.NewPrinter(cmd.OutOrStdout(), plain).Print(render.Filters(a.tracker.Filter()))
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown without terminal styling")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
