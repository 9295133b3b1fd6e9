package location

import "github.com/cropwise/cropwise/pkg/crop"

// IndianStates is the built-in table of state centroids.
var IndianStates = []State{
	{"Andhra Pradesh", crop.Coordinates{Latitude: 15.9129, Longitude: 79.7400}},
	{"Assam", crop.Coordinates{Latitude: 26.2006, Longitude: 92.9376}},
	{"Bihar", crop.Coordinates{Latitude: 25.0961, Longitude: 85.3131}},
	{"Chhattisgarh", crop.Coordinates{Latitude: 21.2787, Longitude: 81.8661}},
	{"Gujarat", crop.Coordinates{Latitude: 22.2587, Longitude: 71.1924}},
	{"Haryana", crop.Coordinates{Latitude: 29.0588, Longitude: 76.0856}},
	{"Himachal Pradesh", crop.Coordinates{Latitude: 31.1048, Longitude: 77.1734}},
	{"Jharkhand", crop.Coordinates{Latitude: 23.6102, Longitude: 85.2799}},
	{"Karnataka", crop.Coordinates{Latitude: 15.3173, Longitude: 75.7139}},
	{"Kerala", crop.Coordinates{Latitude: 10.8505, Longitude: 76.2711}},
	{"Madhya Pradesh", crop.Coordinates{Latitude: 22.9734, Longitude: 78.6569}},
	{"Maharashtra", crop.Coordinates{Latitude: 19.7515, Longitude: 75.7139}},
	{"Manipur", crop.Coordinates{Latitude: 24.6637, Longitude: 93.9063}},
	{"Meghalaya", crop.Coordinates{Latitude: 25.4670, Longitude: 91.3662}},
	{"Mizoram", crop.Coordinates{Latitude: 23.1645, Longitude: 92.9376}},
	{"Nagaland", crop.Coordinates{Latitude: 26.1584, Longitude: 94.5624}},
	{"Odisha", crop.Coordinates{Latitude: 20.9517, Longitude: 85.0985}},
	{"Punjab", crop.Coordinates{Latitude: 31.1471, Longitude: 75.3412}},
	{"Rajasthan", crop.Coordinates{Latitude: 27.0238, Longitude: 74.2179}},
	{"Sikkim", crop.Coordinates{Latitude: 27.5330, Longitude: 88.5122}},
	{"Tamil Nadu", crop.Coordinates{Latitude: 11.1271, Longitude: 78.6569}},
	{"Telangana", crop.Coordinates{Latitude: 18.1124, Longitude: 79.0193}},
	{"Tripura", crop.Coordinates{Latitude: 23.9408, Longitude: 91.9882}},
	{"Uttar Pradesh", crop.Coordinates{Latitude: 26.8467, Longitude: 80.9462}},
	{"Uttarakhand", crop.Coordinates{Latitude: 30.0668, Longitude: 79.0193}},
	{"West Bengal", crop.Coordinates{Latitude: 22.9868, Longitude: 87.8550}},
}

var india = mustGazetteer(IndianStates)

// India returns the built-in gazetteer.
func India() *Gazetteer { return india }

func mustGazetteer(states []State) *Gazetteer {
	g, err := NewGazetteer(states)
	if err != nil {
		panic(err)
	}
	return g
}
