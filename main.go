package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/expense-tracker/internal"
)

type Params struct {
	Config     string `descr:"Path to config file (default ~/.expense-tracker/config.yaml)" optional:"true"`
	File       string `descr:"Path to the expense data file (default from config, then expenses.txt)" optional:"true"`
	Mode       string `descr:"What to do" alts:"menu,list,search,report,add" strict:"true" default:"menu"`
	Output     string `descr:"Output format for list, search and report" alts:"table,json" optional:"true"`
	Term       string `descr:"Search term: category text, YYYY-MM-DD date or amount like 12.50" optional:"true"`
	Amount     string `descr:"Amount of the expense to add" optional:"true"`
	Category   string `descr:"Category of the expense to add" optional:"true"`
	Date       string `descr:"Date of the expense to add (YYYY-MM-DD)" optional:"true"`
	Recurring  bool   `descr:"Add the expense as recurring" optional:"true"`
	Frequency  string `descr:"Frequency label of a recurring expense (default from config, then Monthly)" optional:"true"`
	Import     string `descr:"Append expenses from [format:]path before running (formats: expenses-txt, simple-json, xlsx)" optional:"true"`
	Export     string `descr:"Write expenses and reports to an xlsx workbook" optional:"true"`
	Save       bool   `descr:"Save the data file after importing" optional:"true"`
	LogLevel   string `descr:"Log level: debug, info, warn, error (default from config, then warn)" optional:"true"`
	InitConfig bool   `descr:"Write the effective settings to the config file and exit" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("expense-tracker").
		WithShort("Track personal expenses in a flat text file").
		WithLong("Records dated, categorized expenses (optionally recurring) in a comma-separated text file, and lists, searches and summarizes them by category and by month. Without --mode it starts an interactive menu.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdin, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, stdin io.Reader, stdout, stderr io.Writer) error {
	configPath := params.Config
	required := configPath != ""
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfigOrDefault(configPath, required)
	if err != nil {
		return err
	}

	logLevel := params.LogLevel
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	internal.SetupLogging(stderr, logLevel)

	dataFile := cfg.ResolveDataFile(params.File)

	if params.InitConfig {
		if configPath == "" {
			return errors.New("no config path available, pass --config")
		}
		cfg.DataFile = dataFile
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote config to %s\n", configPath)
		return nil
	}

	output := params.Output
	if output == "" {
		output = cfg.Output
	}
	if output != internal.OutputTable && output != internal.OutputJSON {
		return fmt.Errorf("invalid output format %q", output)
	}

	expenses, stats, err := internal.LoadExpenses(dataFile)
	if err != nil {
		return err
	}

	if params.Import != "" {
		imported, err := internal.ImportExpenses(params.Import)
		if err != nil {
			return err
		}
		expenses = append(expenses, imported...)
		fmt.Fprintf(stderr, "Imported %d expenses from %s\n", len(imported), params.Import)
		if params.Save {
			if err := internal.SaveExpenses(dataFile, expenses); err != nil {
				return err
			}
		}
	}

	switch params.Mode {
	case "list":
		if output == internal.OutputJSON {
			err = internal.PrintExpensesJSON(stdout, expenses)
		} else {
			internal.PrintExpensesTable(stdout, expenses)
		}
	case "search":
		found := internal.Search(expenses, params.Term)
		if output == internal.OutputJSON {
			err = internal.PrintSearchJSON(stdout, params.Term, found)
		} else {
			internal.PrintSearchTable(stdout, params.Term, len(expenses), found)
		}
	case "report":
		report := internal.BuildReport(expenses)
		if output == internal.OutputJSON {
			err = internal.PrintReportJSON(stdout, report)
		} else {
			internal.PrintReportTable(stdout, report)
		}
	case "add":
		expenses, err = addFromFlags(params, cfg, expenses, stdout)
		if err == nil {
			err = internal.SaveExpenses(dataFile, expenses)
		}
	default:
		printLoadFeedback(stdout, dataFile, stats)
		session := newSession(stdin, stdout, dataFile, cfg, expenses)
		err = session.Run()
		expenses = session.expenses
	}
	if err != nil {
		return err
	}

	if params.Export != "" {
		if err := internal.ExportXLSX(params.Export, expenses); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Exported %d expenses to %s\n", len(expenses), params.Export)
	}

	return nil
}

func addFromFlags(params *Params, cfg *internal.Config, expenses []internal.Expense, w io.Writer) ([]internal.Expense, error) {
	amount, err := internal.ParseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := internal.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var e internal.Expense
	if params.Recurring {
		frequency := params.Frequency
		if strings.TrimSpace(frequency) == "" {
			frequency = cfg.Frequency()
		}
		e, err = internal.NewRecurringExpense(amount, params.Category, params.Date, frequency)
	} else {
		e, err = internal.NewExpense(amount, params.Category, params.Date)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Added: %s\n", e.Display())
	return append(expenses, e), nil
}

func printLoadFeedback(w io.Writer, dataFile string, stats internal.LoadStats) {
	if stats.Missing {
		fmt.Fprintf(w, "Data file '%s' not found. Starting with an empty tracker.\n", dataFile)
		return
	}
	fmt.Fprintf(w, "Loaded %d expenses with %d unique categories.\n", stats.Loaded, stats.Categories)
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d unreadable lines in '%s'.\n", stats.Skipped, dataFile)
	}
}
