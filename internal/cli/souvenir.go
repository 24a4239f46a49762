package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

func souvenirCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "souvenir",
		Aliases: []string{"souvenirs", "s"},
		Short:   "Manage souvenirs",
	}
	cmd.AddCommand(
		souvenirAddCmd(a),
		souvenirUpdateCmd(a),
		souvenirDeleteCmd(a),
		souvenirGetCmd(a),
		souvenirListCmd(a),
		souvenirByYearCmd(a),
	)
	return cmd
}

type souvenirFlags struct {
	name           string
	manufacturerID int64
	date           string
	price          float64
}

func (f *souvenirFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Souvenir name")
	cmd.Flags().Int64Var(&f.manufacturerID, "manufacturer", 0, "Id of the producing manufacturer")
	cmd.Flags().StringVar(&f.date, "date", "", "Production date, YYYY-MM-DD or DD-MM-YYYY")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Price")
}

func (f *souvenirFlags) productionDate() (time.Time, error) {
	if f.date == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(f.date)
}

func souvenirAddCmd(a *app) *cobra.Command {
	var flags souvenirFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a souvenir",
		Example: heredoc.Doc(`
			$ souvenirs souvenir add --name Mug --manufacturer 1 --date 2020-05-01 --price 9.5
			$ souvenirs souvenir add --name Mug --manufacturer 1 --date 01-05-2020 --price 9.5
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			produced, err := flags.productionDate()
			if err != nil {
				return err
			}
			saved, err := a.registry.Souvenirs.AddSouvenir(a.context(), domain.NewSouvenir(flags.name, flags.manufacturerID, produced, flags.price))
			if err != nil {
				return err
			}
			printSouvenirSaved(cmd, "Souvenir added.", saved)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func souvenirUpdateCmd(a *app) *cobra.Command {
	var flags souvenirFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a souvenir",
		Long: heredoc.Doc(`
			Update a souvenir. Fields whose flag is not given keep their
			current value.
		`),
		Example: heredoc.Doc(`
			$ souvenirs souvenir update 3 --price 12
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.registry.Souvenirs.GetSouvenir(a.context(), id)
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("name") {
				current.Name = flags.name
			}
			if changed("manufacturer") {
				current.ManufacturerID = flags.manufacturerID
			}
			if changed("date") {
				produced, err := flags.productionDate()
				if err != nil {
					return err
				}
				current.ProductionDate = domain.Date(produced)
			}
			if changed("price") {
				current.Price = flags.price
			}
			saved, err := a.registry.Souvenirs.UpdateSouvenir(a.context(), current)
			if err != nil {
				return err
			}
			printSouvenirSaved(cmd, "Souvenir updated.", saved)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func souvenirDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a souvenir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.registry.Souvenirs.DeleteSouvenir(a.context(), id); err != nil {
				return err
			}
			cmd.Println(aurora.Green(fmt.Sprintf("Souvenir %d deleted.", id)))
			return nil
		},
	}
}

func souvenirGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a souvenir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.registry.Souvenirs.GetSouvenir(a.context(), id)
			if err != nil {
				return err
			}
			return printSouvenirs(cmd, []*domain.Souvenir{s})
		},
	}
}

func souvenirListCmd(a *app) *cobra.Command {
	var (
		manufacturerID int64
		country        string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List souvenirs",
		Long: heredoc.Doc(`
			List all souvenirs, or only those of one manufacturer or of the
			manufacturers of one country.
		`),
		Example: heredoc.Doc(`
			$ souvenirs souvenir list
			$ souvenirs souvenir list --manufacturer 1
			$ souvenirs souvenir list --country USA
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			byManufacturer := cmd.Flags().Changed("manufacturer")
			byCountry := cmd.Flags().Changed("country")
			if byManufacturer && byCountry {
				return errors.New("--manufacturer and --country cannot be combined")
			}
			var (
				list []*domain.Souvenir
				err  error
			)
			switch {
			case byManufacturer:
				list, err = a.registry.Souvenirs.SouvenirsByManufacturer(a.context(), manufacturerID)
			case byCountry:
				list, err = a.registry.Souvenirs.SouvenirsByCountry(a.context(), country)
			default:
				list, err = a.registry.Souvenirs.ListSouvenirs(a.context())
			}
			if err != nil {
				return err
			}
			return printSouvenirs(cmd, list)
		},
	}
	cmd.Flags().Int64Var(&manufacturerID, "manufacturer", 0, "Only souvenirs of this manufacturer id")
	cmd.Flags().StringVar(&country, "country", "", "Only souvenirs of manufacturers from this country")
	return cmd
}

func souvenirByYearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "by-year",
		Short: "List souvenirs grouped by production year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.registry.Souvenirs.SouvenirsByYear(a.context())
			if err != nil {
				return err
			}
			return printYearGroups(cmd, groups)
		},
	}
}

func printSouvenirSaved(cmd *cobra.Command, title string, s *domain.Souvenir) {
	cmd.Print(aurora.Green(heredoc.Docf(`
		%s

		ID:           %d
		Name:         %s
		Manufacturer: %d
		Produced:     %s
		Price:        %s
	`, title, s.ID, s.Name, s.ManufacturerID, s.ProductionDate.Format(domain.DateLayout), formatPrice(s.Price))).String())
}
