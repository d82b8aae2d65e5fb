// Package cities holds the fixed table of supported Pakistani cities. The
// table is data, not logic: the pipeline only validates requests against it
// and reads coordinates from it, so it can be regenerated without touching
// the prediction code.
package cities

import (
	"strings"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

type City struct {
	Name     string  `json:"name"`
	Province string  `json:"province"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Provinces in display order.
var Provinces = []string{
	"Punjab",
	"Sindh",
	"Khyber Pakhtunkhwa",
	"Balochistan",
	"Gilgit-Baltistan",
	"Azad Kashmir",
	"Islamabad Capital Territory",
}

// All supported cities, grouped by province. 51 entries.
var All = []City{
	// Punjab
	{"Lahore", "Punjab", 31.5497, 74.3436},
	{"Faisalabad", "Punjab", 31.4504, 73.1350},
	{"Rawalpindi", "Punjab", 33.5651, 73.0169},
	{"Multan", "Punjab", 30.1575, 71.5249},
	{"Gujranwala", "Punjab", 32.1877, 74.1945},
	{"Sialkot", "Punjab", 32.4945, 74.5229},
	{"Bahawalpur", "Punjab", 29.3956, 71.6836},
	{"Sargodha", "Punjab", 32.0836, 72.6711},
	{"Sahiwal", "Punjab", 30.6682, 73.1114},
	{"Sheikhupura", "Punjab", 31.7131, 73.9783},
	{"Jhelum", "Punjab", 32.9405, 73.7276},
	{"Gujrat", "Punjab", 32.5731, 74.0789},
	{"Kasur", "Punjab", 31.1187, 74.4502},
	{"Okara", "Punjab", 30.8138, 73.4534},
	{"Dera Ghazi Khan", "Punjab", 30.0489, 70.6455},
	{"Rahim Yar Khan", "Punjab", 28.4202, 70.2952},
	// Sindh
	{"Karachi", "Sindh", 24.8607, 67.0011},
	{"Hyderabad", "Sindh", 25.3960, 68.3578},
	{"Sukkur", "Sindh", 27.7052, 68.8574},
	{"Larkana", "Sindh", 27.5590, 68.2123},
	{"Nawabshah", "Sindh", 26.2442, 68.4100},
	{"Mirpur Khas", "Sindh", 25.5276, 69.0159},
	{"Jacobabad", "Sindh", 28.2769, 68.4514},
	{"Shikarpur", "Sindh", 27.9556, 68.6382},
	{"Dadu", "Sindh", 26.7319, 67.7760},
	{"Thatta", "Sindh", 24.7461, 67.9243},
	// Khyber Pakhtunkhwa
	{"Peshawar", "Khyber Pakhtunkhwa", 34.0151, 71.5249},
	{"Mardan", "Khyber Pakhtunkhwa", 34.1986, 72.0404},
	{"Mingora", "Khyber Pakhtunkhwa", 34.7717, 72.3600},
	{"Abbottabad", "Khyber Pakhtunkhwa", 34.1688, 73.2215},
	{"Kohat", "Khyber Pakhtunkhwa", 33.5869, 71.4414},
	{"Dera Ismail Khan", "Khyber Pakhtunkhwa", 31.8313, 70.9017},
	{"Bannu", "Khyber Pakhtunkhwa", 32.9862, 70.6042},
	{"Swabi", "Khyber Pakhtunkhwa", 34.1202, 72.4698},
	{"Nowshera", "Khyber Pakhtunkhwa", 34.0153, 71.9747},
	{"Chitral", "Khyber Pakhtunkhwa", 35.8511, 71.7864},
	// Balochistan
	{"Quetta", "Balochistan", 30.1798, 66.9750},
	{"Gwadar", "Balochistan", 25.1264, 62.3225},
	{"Turbat", "Balochistan", 26.0031, 63.0544},
	{"Khuzdar", "Balochistan", 27.8000, 66.6167},
	{"Sibi", "Balochistan", 29.5430, 67.8773},
	{"Zhob", "Balochistan", 31.3417, 69.4493},
	{"Chaman", "Balochistan", 30.9210, 66.4597},
	// Gilgit-Baltistan
	{"Gilgit", "Gilgit-Baltistan", 35.9208, 74.3089},
	{"Skardu", "Gilgit-Baltistan", 35.2971, 75.6333},
	{"Hunza", "Gilgit-Baltistan", 36.3167, 74.6500},
	// Azad Kashmir
	{"Muzaffarabad", "Azad Kashmir", 34.3700, 73.4711},
	{"Mirpur", "Azad Kashmir", 33.1478, 73.7518},
	{"Kotli", "Azad Kashmir", 33.5156, 73.9021},
	{"Rawalakot", "Azad Kashmir", 33.8578, 73.7604},
	// Islamabad Capital Territory
	{"Islamabad", "Islamabad Capital Territory", 33.6844, 73.0479},
}

var byName = func() map[string]City {
	m := make(map[string]City, len(All))
	for _, c := range All {
		m[normalize(c.Name)] = c
	}
	return m
}()

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup resolves a city name case-insensitively. Unknown names return
// models.ErrUnknownCity before any upstream call is made.
func Lookup(name string) (City, error) {
	c, ok := byName[normalize(name)]
	if !ok {
		return City{}, models.ErrUnknownCity
	}
	return c, nil
}

// ByProvince returns the table grouped by province, in display order.
func ByProvince() map[string][]City {
	m := make(map[string][]City, len(Provinces))
	for _, c := range All {
		m[c.Province] = append(m[c.Province], c)
	}
	return m
}
