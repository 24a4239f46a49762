package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	manufacturerdomain "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirdomain "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 2, 1, ' ', 0)
}

func printManufacturers(cmd *cobra.Command, list []*manufacturerdomain.Manufacturer) error {
	if len(list) == 0 {
		cmd.Println(aurora.Yellow("No manufacturers found."))
		return nil
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY")
	for _, m := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Name, m.Country)
	}
	return tw.Flush()
}

func printSouvenirs(cmd *cobra.Command, list []*souvenirdomain.Souvenir) error {
	if len(list) == 0 {
		cmd.Println(aurora.Yellow("No souvenirs found."))
		return nil
	}
	tw := newTable(cmd.OutOrStdout())
	writeSouvenirRows(tw, list)
	return tw.Flush()
}

func writeSouvenirRows(w io.Writer, list []*souvenirdomain.Souvenir) {
	fmt.Fprintln(w, "ID\tNAME\tMANUFACTURER\tPRODUCED\tPRICE")
	for _, s := range list {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			s.ID, s.Name, s.ManufacturerID, s.ProductionDate.Format(souvenirdomain.DateLayout), formatPrice(s.Price))
	}
}

func printCatalogs(cmd *cobra.Command, catalogs []manufacturerports.Catalog) error {
	if len(catalogs) == 0 {
		cmd.Println(aurora.Yellow("No manufacturers found."))
		return nil
	}
	out := cmd.OutOrStdout()
	for i, catalog := range catalogs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		m := catalog.Manufacturer
		fmt.Fprintln(out, aurora.Bold(fmt.Sprintf("%s (%s) #%d", m.Name, m.Country, m.ID)))
		if len(catalog.Souvenirs) == 0 {
			fmt.Fprintln(out, "  no souvenirs")
			continue
		}
		tw := newTable(out)
		writeSouvenirRows(tw, catalog.Souvenirs)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func printYearGroups(cmd *cobra.Command, groups map[int][]*souvenirdomain.Souvenir) error {
	if len(groups) == 0 {
		cmd.Println(aurora.Yellow("No souvenirs found."))
		return nil
	}
	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	sort.Ints(years)
	out := cmd.OutOrStdout()
	for i, year := range years {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, aurora.Bold(strconv.Itoa(year)))
		tw := newTable(out)
		writeSouvenirRows(tw, groups[year])
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}
