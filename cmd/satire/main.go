// Command satire decides satisfiability of DIMACS CNF formulas.
//
// Usage:
//
//	satire {dpll|cdcl} check <file.cnf>
//
// Exit codes follow the convention of comparable solvers: 10 when the formula
// is satisfiable, 20 when unsatisfiable, 0 when the verdict is unknown
// (cancelled or out of budget), and 1 on parse or internal failure.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Qwaz/satire/cnf"
	"github.com/Qwaz/satire/config"
	"github.com/Qwaz/satire/dpll"
	"github.com/Qwaz/satire/encoding"
	"github.com/Qwaz/satire/sat"
	"github.com/Qwaz/satire/solver"
)

const (
	exitUnknown = 0
	exitFailure = 1
	exitSat     = 10
	exitUnsat   = 20
)

type app struct {
	conf *config.Config

	verbose      bool
	timeout      time.Duration
	maxDecisions int64

	exitCode int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := &app{conf: config.New()}

	root := a.newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		a.conf.Logger.Error(err)
		return exitFailure
	}
	return a.exitCode
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "satire",
		Short:         "satire is a SAT solver for DIMACS CNF formulas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.conf.Logger.SetLevel(logrus.DebugLevel)
			} else {
				a.conf.Logger.SetLevel(logrus.InfoLevel)
			}
			a.conf.MaxDecisions = a.maxDecisions
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log solver internals")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "give up with an unknown verdict after this long (0 = no limit)")
	root.PersistentFlags().Int64Var(&a.maxDecisions, "max-decisions", 0, "give up with an unknown verdict after this many decisions (0 = no limit)")

	root.AddCommand(
		a.newEngineCommand("cdcl", "conflict-driven clause learning solver",
			func(f *cnf.Formula, conf *config.Config) sat.Engine { return solver.New(f, conf) }),
		a.newEngineCommand("dpll", "exhaustive DPLL baseline solver",
			func(f *cnf.Formula, conf *config.Config) sat.Engine { return dpll.New(f, conf) }),
	)
	return root
}

func (a *app) newEngineCommand(name, short string, build func(*cnf.Formula, *config.Config) sat.Engine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file.cnf>",
		Short: "decide satisfiability of a DIMACS CNF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(build, args[0])
		},
	})
	return cmd
}

func (a *app) check(build func(*cnf.Formula, *config.Config) sat.Engine, path string) error {
	formula, err := parseFile(path)
	if err != nil {
		return err
	}
	a.conf.Logger.WithFields(logrus.Fields{
		"vars":    formula.NumVars,
		"clauses": formula.NumClauses(),
	}).Info("solving ", path)

	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	engine := build(formula, a.conf)
	started := time.Now()
	result, err := engine.Solve(ctx)
	if err != nil {
		return err
	}
	a.conf.Logger.WithField("elapsed", time.Since(started)).Info("finished solving")
	a.logStats(engine)

	switch result.Status {
	case sat.Sat:
		if !formula.Verify(result.Model) {
			return errors.New("engine produced a model that does not satisfy the formula")
		}
		fmt.Println("s SATISFIABLE")
		fmt.Println(modelLine(result.Model))
		a.exitCode = exitSat
	case sat.Unsat:
		fmt.Println("s UNSATISFIABLE")
		a.exitCode = exitUnsat
	default:
		fmt.Println("s UNKNOWN")
		a.exitCode = exitUnknown
	}
	return nil
}

func (a *app) logStats(engine sat.Engine) {
	switch e := engine.(type) {
	case *solver.Solver:
		stats := e.Stats()
		a.conf.Logger.WithFields(logrus.Fields{
			"decisions":    stats.Decisions,
			"propagations": stats.Propagations,
			"conflicts":    stats.Conflicts,
			"learnt":       stats.Learnt,
		}).Info("search statistics")
	case *dpll.Solver:
		stats := e.Stats()
		a.conf.Logger.WithFields(logrus.Fields{
			"decisions":    stats.Decisions,
			"propagations": stats.Propagations,
			"backtracks":   stats.Backtracks,
		}).Info("search statistics")
	}
}

// modelLine renders a total assignment as a DIMACS values line.
func modelLine(model []bool) string {
	var b strings.Builder
	b.WriteString("v")
	for i, val := range model {
		v := i + 1
		if !val {
			v = -v
		}
		fmt.Fprintf(&b, " %d", v)
	}
	b.WriteString(" 0")
	return b.String()
}

func parseFile(path string) (*cnf.Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening CNF file")
	}
	defer f.Close()

	formula, err := encoding.ParseDimacs(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return formula, nil
}
