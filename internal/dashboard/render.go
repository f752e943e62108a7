package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sand/wallet-dashboard/backend/internal/usecases"
)

var columns = []string{"Type", "Transaction ID", "Sender", "Receiver", "Amount", "Currency", "Cause", "Created At"}

// RenderTable writes the current page of v as an aligned table.
func RenderTable(w io.Writer, v usecases.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	if len(v.Items) == 0 {
		fmt.Fprintln(tw, "No transactions to display.")
	}
	for _, tx := range v.Items {
		cause := ""
		if tx.Cause != nil {
			cause = *tx.Cause
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Direction(v.Account).Arrow(),
			tx.ID,
			tx.SenderLabel(),
			tx.ReceiverLabel(),
			tx.AmountLabel(),
			tx.Currency,
			cause,
			tx.CreatedAtLabel(),
		)
	}

	return tw.Flush()
}

// RenderView writes the status line, the table and the page footer.
func RenderView(w io.Writer, v usecases.View) error {
	switch {
	case v.Loading:
		fmt.Fprintln(w, "Loading transactions...")
	case v.Err != nil:
		fmt.Fprintf(w, "Error: %v\n", v.Err)
	default:
		fmt.Fprintln(w, v.Summary())
	}

	if err := RenderTable(w, v); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Page %d of %d, %d total items\n", v.PageIndex+1, v.TotalPages, v.Total)
	return err
}
