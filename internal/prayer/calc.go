package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/captian10/adhan-engine/internal/model"
)

// Calculator derives prayer times from solar position. Angles are degrees of
// solar depression below the horizon; AsrShadow is the shadow-length factor
// (1 for the standard schools).
type Calculator struct {
	FajrAngle float64
	IshaAngle float64
	AsrShadow float64
}

// NewEgyptianCalculator uses the Egyptian General Authority of Survey method,
// matching the host application's configuration.
func NewEgyptianCalculator() *Calculator {
	return &Calculator{FajrAngle: 19.5, IshaAngle: 17.5, AsrShadow: 1}
}

var _ Provider = (*Calculator)(nil)

const sunsetAngle = 0.833 // refraction + solar radius

func (c *Calculator) TimesFor(coords model.Coordinates, date time.Time) ([]model.PrayerTrigger, error) {
	loc := date.Location()
	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
	_, offsetSec := midnight.Zone()
	tz := float64(offsetSec) / 3600

	jd := julianDay(year, int(month), day) - coords.Lng/(15*24)

	fajr, err := sunAngleTime(jd, 5.0/24, coords.Lat, c.FajrAngle, true)
	if err != nil {
		return nil, fmt.Errorf("fajr: %w", err)
	}
	dhuhr := midDay(jd, 12.0/24)
	asr, err := asrTime(jd, 13.0/24, coords.Lat, c.AsrShadow)
	if err != nil {
		return nil, fmt.Errorf("asr: %w", err)
	}
	maghrib, err := sunAngleTime(jd, 18.0/24, coords.Lat, sunsetAngle, false)
	if err != nil {
		return nil, fmt.Errorf("maghrib: %w", err)
	}
	isha, err := sunAngleTime(jd, 18.0/24, coords.Lat, c.IshaAngle, false)
	if err != nil {
		return nil, fmt.Errorf("isha: %w", err)
	}

	// raw hours are solar time at the reference longitude; shifting by the
	// zone offset minus the longitude hour angle yields local clock time.
	adjust := tz - coords.Lng/15
	at := func(hours float64) time.Time {
		return midnight.Add(time.Duration((hours + adjust) * float64(time.Hour)))
	}

	return []model.PrayerTrigger{
		{Name: model.Fajr, Time: at(fajr)},
		{Name: model.Dhuhr, Time: at(dhuhr)},
		{Name: model.Asr, Time: at(asr)},
		{Name: model.Maghrib, Time: at(maghrib)},
		{Name: model.Isha, Time: at(isha)},
	}, nil
}

// astronomy helpers, degree-based

func fixAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func fixHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

func dsin(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func dcos(d float64) float64 { return math.Cos(d * math.Pi / 180) }
func dtan(d float64) float64 { return math.Tan(d * math.Pi / 180) }

func darcsin(x float64) float64     { return math.Asin(x) * 180 / math.Pi }
func darccos(x float64) float64     { return math.Acos(x) * 180 / math.Pi }
func darctan2(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }
func darccot(x float64) float64     { return math.Atan2(1, x) * 180 / math.Pi }

func julianDay(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// sunPosition returns the declination of the sun and the equation of time
// (in hours) for the given julian date.
func sunPosition(jd float64) (declination, equation float64) {
	d := jd - 2451545.0
	g := fixAngle(357.529 + 0.98560028*d)
	q := fixAngle(280.459 + 0.98564736*d)
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))
	e := 23.439 - 0.00000036*d

	declination = darcsin(dsin(e) * dsin(l))
	ra := darctan2(dcos(e)*dsin(l), dcos(l)) / 15
	equation = q/15 - fixHour(ra)
	return
}

// midDay is solar noon in raw hours; portion seeds the sun position with an
// approximate time of day.
func midDay(jd, portion float64) float64 {
	_, eqt := sunPosition(jd + portion)
	return fixHour(12 - eqt)
}

// sunAngleTime is the raw hour at which the sun sits `angle` degrees below
// the horizon, before (ccw) or after solar noon.
func sunAngleTime(jd, portion, lat, angle float64, ccw bool) (float64, error) {
	decl, _ := sunPosition(jd + portion)
	noon := midDay(jd, portion)

	cosArg := (-dsin(angle) - dsin(decl)*dsin(lat)) / (dcos(decl) * dcos(lat))
	if cosArg < -1 || cosArg > 1 {
		return 0, fmt.Errorf("sun never reaches %.1f° below horizon at latitude %.3f", angle, lat)
	}
	t := darccos(cosArg) / 15
	if ccw {
		return noon - t, nil
	}
	return noon + t, nil
}

// asrTime is the raw hour at which an object's shadow reaches `shadow` times
// its own length past the noon shadow.
func asrTime(jd, portion, lat, shadow float64) (float64, error) {
	decl, _ := sunPosition(jd + portion)
	angle := -darccot(shadow + dtan(math.Abs(lat-decl)))
	return sunAngleTime(jd, portion, lat, angle, false)
}
