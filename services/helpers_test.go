package services

import (
	"io"
	"time"

	"bikeshare-stats/models"
	"bikeshare-stats/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, false) }

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func f64(v float64) *float64 { return &v }

func year(v int) *int { return &v }

// sampleTrips spans January to March 2017. 2017-01-01 is a Sunday.
func sampleTrips() *models.RecordSet {
	return &models.RecordSet{
		City:   "chicago",
		Schema: models.Schema{HasUserType: true, HasGender: true, HasBirthYear: true},
		Trips: []*models.Trip{
			{Start: at("2017-01-01 09:07:57"), Duration: f64(776), StartStation: "Canal St & Madison St", EndStation: "Paulina Ave & North Ave", UserType: "Subscriber", Gender: "Male", BirthYear: year(1984)},
			{Start: at("2017-01-02 17:10:00"), Duration: f64(3661), StartStation: "Clinton St & Washington Blvd", EndStation: "Canal St & Madison St", UserType: "Subscriber", Gender: "Female", BirthYear: year(1990)},
			{Start: at("2017-02-06 17:30:00"), Duration: f64(400), StartStation: "Canal St & Madison St", EndStation: "Paulina Ave & North Ave", UserType: "Customer", BirthYear: year(1990)},
			{Start: at("2017-02-13 08:00:00"), Duration: f64(120), StartStation: "Streeter Dr & Grand Ave", EndStation: "", UserType: "Subscriber", Gender: "Male", BirthYear: year(1984)},
			{Start: at("2017-03-05 17:45:00"), Duration: f64(300), StartStation: "Canal St & Madison St", EndStation: "Paulina Ave & North Ave", UserType: "", Gender: "Male"},
		},
	}
}
