package smoke

import (
	"fmt"
	"math/rand"
)

type submission struct {
	EventHandle string  `json:"event_handle"`
	EventName   string  `json:"event_name,omitempty"`
	Product     product `json:"product"`
}

type product struct {
	ProductID int64    `json:"product_id"`
	Handle    string   `json:"handle"`
	Title     string   `json:"title"`
	Rating    *float64 `json:"rating"`
	Note      string   `json:"note"`
}

var sampleWines = []string{
	"Chateau Margaux 2015",
	"Barolo Riserva 2016",
	"Riesling Kabinett 2021",
	"Rioja Gran Reserva 2012",
	"Pinot Noir Willamette 2019",
	"Chablis Premier Cru 2020",
}

var sampleNotes = []string{
	"Dark fruit, firm tannins, long finish.",
	"Bright acidity with citrus and wet stone.",
	"Earthy nose, dried cherry, leather.",
	"Round and buttery, needs food.",
	"",
}

// generateSubmission produces the i-th sample note for a run. Product ids
// are stable per index so repeated runs replace entries instead of growing
// the document without bound.
func generateSubmission(eventHandle string, i int) submission {
	wine := sampleWines[i%len(sampleWines)]

	var rating *float64
	if i%4 != 3 {
		r := float64(rand.Intn(9)+1) / 2.0
		rating = &r
	}

	return submission{
		EventHandle: eventHandle,
		EventName:   "Smoke Tasting",
		Product: product{
			ProductID: int64(9000000 + i%len(sampleWines)),
			Handle:    fmt.Sprintf("smoke-wine-%d", i%len(sampleWines)),
			Title:     wine,
			Rating:    rating,
			Note:      sampleNotes[i%len(sampleNotes)],
		},
	}
}
