package cli

import (
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
)

func manufacturerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manufacturer",
		Aliases: []string{"manufacturers", "m"},
		Short:   "Manage manufacturers",
	}
	cmd.AddCommand(
		manufacturerAddCmd(a),
		manufacturerUpdateCmd(a),
		manufacturerDeleteCmd(a),
		manufacturerGetCmd(a),
		manufacturerListCmd(a),
		manufacturerByMaxPriceCmd(a),
		manufacturerBySouvenirCmd(a),
		manufacturerCountriesCmd(a),
		manufacturerWithSouvenirsCmd(a),
	)
	return cmd
}

func manufacturerAddCmd(a *app) *cobra.Command {
	var name, country string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manufacturer",
		Example: heredoc.Doc(`
			$ souvenirs manufacturer add --name Acme --country USA
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			saved, err := a.registry.Manufacturers.AddManufacturer(a.context(), domain.NewManufacturer(name, country))
			if err != nil {
				return err
			}
			cmd.Print(aurora.Green(heredoc.Docf(`
				Manufacturer added.

				ID:      %d
				Name:    %s
				Country: %s
			`, saved.ID, saved.Name, saved.Country)).String())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Manufacturer name")
	cmd.Flags().StringVar(&country, "country", "", "Country the manufacturer is based in")
	return cmd
}

func manufacturerUpdateCmd(a *app) *cobra.Command {
	var name, country string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a manufacturer",
		Long: heredoc.Doc(`
			Update a manufacturer. Fields whose flag is not given keep their
			current value.
		`),
		Example: heredoc.Doc(`
			$ souvenirs manufacturer update 1 --country Canada
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.registry.Manufacturers.GetManufacturer(a.context(), id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				current.Name = name
			}
			if cmd.Flags().Changed("country") {
				current.Country = country
			}
			saved, err := a.registry.Manufacturers.UpdateManufacturer(a.context(), current)
			if err != nil {
				return err
			}
			cmd.Print(aurora.Green(heredoc.Docf(`
				Manufacturer updated.

				ID:      %d
				Name:    %s
				Country: %s
			`, saved.ID, saved.Name, saved.Country)).String())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New manufacturer name")
	cmd.Flags().StringVar(&country, "country", "", "New country")
	return cmd
}

func manufacturerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a manufacturer and all of its souvenirs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			report, err := a.registry.Manufacturers.DeleteManufacturer(a.context(), id)
			if err != nil {
				return err
			}
			cmd.Print(aurora.Green(heredoc.Docf(`
				Manufacturer deleted.

				ID:                %d
				Removed souvenirs: %v
			`, report.ManufacturerID, report.RemovedSouvenirs)).String())
			if !report.Complete() {
				cmd.Print(aurora.Yellow(heredoc.Docf(`
					Souvenirs left behind: %v
				`, report.FailedSouvenirs)).String())
			}
			return nil
		},
	}
}

func manufacturerGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a manufacturer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := a.registry.Manufacturers.GetManufacturer(a.context(), id)
			if err != nil {
				return err
			}
			return printManufacturers(cmd, []*domain.Manufacturer{m})
		},
	}
}

func manufacturerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all manufacturers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.registry.Manufacturers.ListManufacturers(a.context())
			if err != nil {
				return err
			}
			return printManufacturers(cmd, list)
		},
	}
}

func manufacturerByMaxPriceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "by-max-price <price>",
		Short: "List manufacturers whose souvenirs all cost at most price",
		Long: heredoc.Doc(`
			List manufacturers none of whose souvenirs costs more than the given
			price. Manufacturers without souvenirs are included.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			list, err := a.registry.Manufacturers.ManufacturersByMaxPrice(a.context(), price)
			if err != nil {
				return err
			}
			return printManufacturers(cmd, list)
		},
	}
}

func manufacturerBySouvenirCmd(a *app) *cobra.Command {
	var (
		name string
		year int
	)
	cmd := &cobra.Command{
		Use:   "by-souvenir",
		Short: "List manufacturers of a souvenir produced in a given year",
		Example: heredoc.Doc(`
			$ souvenirs manufacturer by-souvenir --name Mug --year 2020
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.registry.Manufacturers.ManufacturersOfSouvenirByYear(a.context(), name, year)
			if err != nil {
				return err
			}
			return printManufacturers(cmd, list)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Souvenir name")
	cmd.Flags().IntVar(&year, "year", 0, "Production year")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func manufacturerCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the distinct countries of all manufacturers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			countries, err := a.registry.Manufacturers.Countries(a.context())
			if err != nil {
				return err
			}
			if len(countries) == 0 {
				cmd.Println(aurora.Yellow("No manufacturers found."))
				return nil
			}
			for _, country := range countries {
				cmd.Println(country)
			}
			return nil
		},
	}
}

func manufacturerWithSouvenirsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "with-souvenirs",
		Short: "List every manufacturer together with its souvenirs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogs, err := a.registry.Manufacturers.ManufacturersWithSouvenirs(a.context())
			if err != nil {
				return err
			}
			return printCatalogs(cmd, catalogs)
		},
	}
}
