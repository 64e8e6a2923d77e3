package report

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TicketFilter is a compiled boolean expression over TicketRow fields,
// for example `WagonType == "coupe" && Price > 300`.
type TicketFilter struct {
	source  string
	program *vm.Program
}

func NewTicketFilter(source string) (*TicketFilter, error) {
	program, err := expr.Compile(source, expr.Env(TicketRow{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("ticket filter %q: %w", source, err)
	}

	return &TicketFilter{
		source:  source,
		program: program,
	}, nil
}

func (f *TicketFilter) String() string {
	return f.source
}

func (f *TicketFilter) Match(row TicketRow) (bool, error) {
	output, err := expr.Run(f.program, row)
	if err != nil {
		return false, err
	}
	return output.(bool), nil
}

// Apply keeps the rows matching the filter, in ledger order. A nil filter
// keeps everything.
func (f *TicketFilter) Apply(rows []TicketRow) ([]TicketRow, error) {
	if f == nil {
		return rows, nil
	}

	var matched []TicketRow
	for _, row := range rows {
		ok, err := f.Match(row)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}
