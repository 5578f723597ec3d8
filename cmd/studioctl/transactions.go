package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/service"
)

func newTransactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "transactions", Aliases: []string{"tx"}, Short: "Income and expenses"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := a.table("ID\tDESCRIÇÃO\tTIPO\tCATEGORIA\tVALOR\tVENCIMENTO\tSTATUS")
			for _, t := range a.store.Snapshot().Transactions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Description, t.Type, t.Category, t.Amount.StringFixed(2), t.DueDate, t.Status)
			}
			return w.Flush()
		},
	}

	var (
		req    service.CreateTransactionRequest
		amount string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}
			req.Amount = value
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.AddTransaction(ctx, req); err != nil {
				return err
			}
			a.done("Transação registrada com sucesso!")
			return nil
		},
	}
	add.Flags().StringVar(&req.Description, "description", "", "what the entry is for")
	add.Flags().StringVar(&amount, "amount", "", "amount, e.g. 250.00")
	add.Flags().StringVar(&req.Type, "type", string(models.TransactionIncome), "Receita or Despesa")
	add.Flags().StringVar(&req.Category, "category", "", "category label")
	add.Flags().StringVar(&req.DueDate, "due", "", "due date as YYYY-MM-DD")
	add.Flags().StringVar(&req.Status, "status", string(models.TransactionPending), "Pendente or Pago")
	_ = add.MarkFlagRequired("description")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("due")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a transaction between Pendente and Pago",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.ToggleTransactionStatus(ctx, id); err != nil {
				return err
			}
			a.done("Status atualizado!")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.DeleteTransaction(ctx, id); err != nil {
				return err
			}
			a.done("Transação excluída!")
			return nil
		},
	}

	cmd.AddCommand(list, add, toggle, remove)
	return cmd
}
