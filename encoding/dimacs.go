// Package encoding parses the DIMACS CNF text format.
package encoding

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Qwaz/satire/cnf"
)

// ParseDimacs parses a restricted DIMACS CNF subset: comment lines starting
// with 'c', a mandatory problem line "p cnf <numVars> <numClauses>", and one
// clause per line as space-separated non-zero integers terminated by 0.
// Comments and blank lines may appear anywhere. The clause count must match
// the problem line.
func ParseDimacs(in io.Reader) (*cnf.Formula, error) {
	scanner := bufio.NewScanner(in)

	var (
		formula         *cnf.Formula
		declaredClauses int
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if formula == nil {
			f, n, err := parseProblemLine(line)
			if err != nil {
				return nil, err
			}
			formula, declaredClauses = f, n
			continue
		}
		if strings.HasPrefix(line, "p") {
			return nil, errors.New("multiple problem lines")
		}
		clause, err := parseClauseLine(line)
		if err != nil {
			return nil, err
		}
		if err := formula.AddClause(clause); err != nil {
			return nil, errors.Wrapf(err, "bad clause %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading CNF input")
	}
	if formula == nil {
		return nil, errors.New("problem line 'p cnf <numVars> <numClauses>' not found")
	}
	if got := formula.NumClauses(); got != declaredClauses {
		return nil, errors.Errorf("problem line declares %d clauses, found %d", declaredClauses, got)
	}
	return formula, nil
}

func parseProblemLine(line string) (*cnf.Formula, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return nil, 0, errors.Errorf("malformed problem line %q", line)
	}
	numVars, err := strconv.Atoi(fields[2])
	if err != nil || numVars < 0 {
		return nil, 0, errors.Errorf("malformed variable count in problem line %q", line)
	}
	numClauses, err := strconv.Atoi(fields[3])
	if err != nil || numClauses < 0 {
		return nil, 0, errors.Errorf("malformed clause count in problem line %q", line)
	}
	return cnf.New(numVars), numClauses, nil
}

func parseClauseLine(line string) ([]int, error) {
	fields := strings.Fields(line)
	clause := []int{}

	for i, field := range fields {
		p, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "bad literal in clause %q", line)
		}
		if p == 0 {
			if i != len(fields)-1 {
				return nil, errors.Errorf("literal after terminating 0 in clause %q", line)
			}
			return clause, nil
		}
		clause = append(clause, p)
	}
	return nil, errors.Errorf("clause %q is missing its terminating 0", line)
}
