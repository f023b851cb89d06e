package region

// StateIDs gives the numerical mask flags used for Australian states
// and territories.
var StateIDs = map[string]int{
	"NSW": 1,
	"ACT": 2,
	"VIC": 3,
	"TAS": 4,
	"SA":  5,
	"WA":  6,
	"NT":  7,
	"QLD": 8,
}

// StateBBoxes holds hard-wired state bounding boxes, assembled from
// GA, BoM and state department sources.
var StateBBoxes = map[string]BBox{
	"NSW": {MinLon: 140.95, MinLat: -37.5, MaxLon: 153.575, MaxLat: -28.0},
	"ACT": {MinLon: 148.76, MinLat: -35.92, MaxLon: 149.4, MaxLat: -35.12},
	"VIC": {MinLon: 141.0, MinLat: -39.15, MaxLon: 149.98, MaxLat: -33.95},
	"TAS": {MinLon: 143.5, MinLat: -43.575, MaxLon: 149.0, MaxLat: -39.20},
	"SA":  {MinLon: 129.0, MinLat: -38.10, MaxLon: 141.0, MaxLat: -26.0},
	"WA":  {MinLon: 112.93, MinLat: -35.08, MaxLon: 129.0, MaxLat: -13.75},
	"NT":  {MinLon: 129.0, MinLat: -26.0, MaxLon: 138.0, MaxLat: -11.0},
	"QLD": {MinLon: 137.8, MinLat: -29.175, MaxLon: 153.575, MaxLat: -10.075},
}
