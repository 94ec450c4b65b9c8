// Package report renders registry results as operator-facing text.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/registry"
	"github.com/roach88/registry/internal/store"
)

// Table writes a listing as an aligned text table. An empty listing
// prints "(no rows)" under the header.
func Table(w io.Writer, t store.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetBorder(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.AppendBulk(t.Rows)
	tw.Render()
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
	}
}

// Abstract writes a driver abstract. The per-ticket section appears only
// when the abstract was compiled in detailed form.
func Abstract(w io.Writer, a registry.Abstract) {
	fmt.Fprintf(w, "Driver abstract: %s (born %s)\n",
		a.Person.Name, domain.FormatDate(a.Person.BirthDate))
	fmt.Fprintf(w, "Registrations:   %d\n", a.Registrations)
	fmt.Fprintf(w, "Tickets:         %d\n", a.TicketCount)
	fmt.Fprintf(w, "Demerit notices: %d lifetime (%d points)\n",
		a.LifetimeNotices, a.LifetimePoints)
	fmt.Fprintf(w, "                 %d since %s (%d points)\n",
		a.RecentNotices, domain.FormatDate(a.Cutoff), a.RecentPoints)

	if !a.Detailed {
		return
	}
	fmt.Fprintln(w, "Ticket history, newest first:")
	if len(a.Tickets) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, t := range a.Tickets {
		fmt.Fprintf(w, "  #%d %s %q fine %d (%s %s)\n",
			t.TNo, domain.FormatDate(t.VDate), t.Violation, t.Fine, t.Make, t.Model)
	}
}

// OwnerSummary writes a numbered, one-line-per-vehicle list of matches.
func OwnerSummary(w io.Writer, matches []registry.OwnerMatch) {
	for i, m := range matches {
		v := m.Vehicle
		fmt.Fprintf(w, "%d) %s %s %d %s, plate %s\n",
			i+1, v.Make, v.Model, v.Year, v.Color, m.Registration.Plate)
	}
}

// OwnerDetail writes one match in full, including its current owner.
func OwnerDetail(w io.Writer, m registry.OwnerMatch) {
	v, r := m.Vehicle, m.Registration
	fmt.Fprintf(w, "VIN %s: %s %s %d %s, plate %s\n",
		v.VIN, v.Make, v.Model, v.Year, v.Color, r.Plate)
	fmt.Fprintf(w, "  registration %d, registered %s, expires %s, owner %s\n",
		r.RegNo, domain.FormatDate(r.RegDate), domain.FormatDate(r.Expiry), r.Owner)
}

// Renewal writes the outcome of a registration renewal.
func Renewal(w io.Writer, r registry.Renewal) {
	var status string
	switch r.Branch {
	case registry.BranchExpiringToday:
		status = "Expiring today!"
	case registry.BranchExpired:
		status = "Expired!"
	default:
		status = "Still valid."
	}
	fmt.Fprintf(w, "%s Registration %d renewed: expiry %s -> %s\n",
		status, r.RegNo, domain.FormatDate(r.OldExpiry), domain.FormatDate(r.NewExpiry))
}
