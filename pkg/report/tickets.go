package report

import (
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/railsim/pkg/kassa"
)

// TicketRow is the flat form of a ticket used for CSV export and
// filtering.
type TicketRow struct {
	Train       string    `csv:"train"`
	Wagon       string    `csv:"wagon"`
	WagonType   string    `csv:"wagon_type"`
	Origin      string    `csv:"origin"`
	Destination string    `csv:"destination"`
	TravelDate  time.Time `csv:"-"`
	Date        string    `csv:"travel_date"`
	Bedding     bool      `csv:"bedding"`
	Amenities   string    `csv:"amenities"`
	Price       float64   `csv:"price"`
}

func TicketRows(tickets []kassa.Ticket) []TicketRow {
	rows := make([]TicketRow, 0, len(tickets))

	for _, ticket := range tickets {
		preferences := ticket.Passenger().Preferences()

		rows = append(rows, TicketRow{
			Train:       ticket.Train().Number(),
			Wagon:       ticket.Wagon().Number(),
			WagonType:   string(ticket.Wagon().Type()),
			Origin:      ticket.DepartureStation().Name(),
			Destination: ticket.Passenger().Destination(),
			TravelDate:  ticket.Passenger().TravelDate(),
			Date:        ticket.Passenger().TravelDate().Format(time.DateOnly),
			Bedding:     preferences.Bedding,
			Amenities:   strings.Join(preferences.Amenities, ";"),
			Price:       ticket.Price(),
		})
	}

	return rows
}

func WriteCSV(w io.Writer, rows []TicketRow) error {
	return gocsv.Marshal(rows, w)
}
