package household

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog is a single refuel of a vehicle.
type FuelLog struct {
	ID          string
	VehicleID   string
	VehicleName string
	Amount      decimal.Decimal
	Date        time.Time
}

// FuelQuery selects the report period. Month 0 reports the whole year.
type FuelQuery struct {
	Year  int
	Month int
}

// VehicleTotal is the fuel spend of one vehicle.
type VehicleTotal struct {
	VehicleID string          `json:"vehicleId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Count     int             `json:"count"`
}

// MonthTotal is the fuel spend of one calendar month.
type MonthTotal struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// FuelReport is the result of ReportFuel.
type FuelReport struct {
	Year      int             `json:"year"`
	Month     int             `json:"month,omitempty"`
	Total     decimal.Decimal `json:"totalCost"`
	LogCount  int             `json:"logCount"`
	ByVehicle []VehicleTotal  `json:"byVehicle"`
	ByMonth   []MonthTotal    `json:"byMonth"`
}

// ReportFuel totals the logs of the selected period. A yearly report carries
// twelve monthly buckets, zero-filled; a single-month report carries none.
func ReportFuel(logs []FuelLog, q FuelQuery) FuelReport {
	r := FuelReport{
		Year:      q.Year,
		Month:     q.Month,
		ByVehicle: []VehicleTotal{},
		ByMonth:   []MonthTotal{},
	}

	var months [12]decimal.Decimal
	vehicles := make(map[string]*VehicleTotal)

	for _, l := range logs {
		if l.Date.Year() != q.Year {
			continue
		}
		if q.Month != 0 && int(l.Date.Month()) != q.Month {
			continue
		}

		r.Total = r.Total.Add(l.Amount)
		r.LogCount++
		months[l.Date.Month()-1] = months[l.Date.Month()-1].Add(l.Amount)

		v, ok := vehicles[l.VehicleID]
		if !ok {
			v = &VehicleTotal{VehicleID: l.VehicleID, Name: l.VehicleName}
			vehicles[l.VehicleID] = v
		}
		v.Amount = v.Amount.Add(l.Amount)
		v.Count++
	}

	for _, v := range vehicles {
		r.ByVehicle = append(r.ByVehicle, *v)
	}
	sort.Slice(r.ByVehicle, func(i, j int) bool {
		if c := r.ByVehicle[i].Amount.Cmp(r.ByVehicle[j].Amount); c != 0 {
			return c > 0
		}
		return r.ByVehicle[i].Name < r.ByVehicle[j].Name
	})

	if q.Month == 0 {
		for i, amount := range months {
			r.ByMonth = append(r.ByMonth, MonthTotal{Month: i + 1, Amount: amount})
		}
	}

	return r
}
