package datagen

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Probability bands shaping the synthetic grid.
const (
	baseDNFProbability     = 0.10
	hazardDNFWeight        = 0.25
	mechanicalShare        = 0.55
	accidentShare          = 0.35
	lappedShare            = 0.35
	maxLapsDown            = 3
	driverSkillSpread      = 0.5
	constructorPaceSpread  = 0.4
	gridNoise              = 6
	firstSeasonYear        = 1990
	raceWeekInterval       = 14 // days between rounds
	seasonStartMonth       = 3
	minDriverAgeAtDebut    = 18
	maxDriverAgeAtDebut    = 32
	defaultDriversPerTeam  = 2
	csvFilePermissionOctal = 0600
	pointsPayingPositions  = 10
)

// pointsByPosition is the scoring table applied to the top finishers.
var pointsByPosition = [pointsPayingPositions]float64{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// circuits pairs each venue with a hazard factor in [0, 1]; higher hazard
// means more DNFs, which is what pushes a circuit into the hard tier.
var circuits = []struct {
	Name   string
	Hazard float64
}{
	{"Monza", 0.15},
	{"Silverstone", 0.20},
	{"Hockenheim", 0.25},
	{"Barcelona", 0.20},
	{"Le Castellet", 0.15},
	{"Zandvoort", 0.45},
	{"Monaco", 0.85},
	{"Singapore", 0.80},
	{"Baku", 0.70},
	{"Spa-Francorchamps", 0.55},
	{"Suzuka", 0.50},
	{"Interlagos", 0.60},
	{"Imola", 0.45},
	{"Hungaroring", 0.40},
	{"Montreal", 0.65},
	{"Jeddah", 0.75},
	{"Melbourne", 0.50},
	{"Austin", 0.35},
	{"Sakhir", 0.30},
	{"Shanghai", 0.30},
}

// Name pools for synthetic drivers and constructors.
var (
	firstNames = []string{
		"Alain", "Ayrton", "Carlos", "Charles", "Daniel", "Emerson", "Felipe",
		"Fernando", "George", "Gerhard", "Jacques", "Jean", "Jenson", "Juan",
		"Keke", "Kimi", "Lando", "Lewis", "Max", "Michael", "Mika", "Nelson",
		"Nico", "Nigel", "Oscar", "Pierre", "Riccardo", "Rubens", "Sebastian",
		"Sergio", "Valtteri", "Yuki",
	}
	lastNames = []string{
		"Alesi", "Alonso", "Barrichello", "Berger", "Bottas", "Button",
		"Fittipaldi", "Gasly", "Hamilton", "Hakkinen", "Hill", "Hulkenberg",
		"Laffite", "Leclerc", "Mansell", "Massa", "Norris", "Ocon", "Patrese",
		"Perez", "Piastri", "Piquet", "Prost", "Raikkonen", "Ricciardo",
		"Rosberg", "Russell", "Sainz", "Schumacher", "Senna", "Tsunoda",
		"Verstappen", "Vettel", "Villeneuve",
	}
	nationalities = []string{
		"British", "German", "Brazilian", "French", "Italian", "Finnish",
		"Spanish", "Dutch", "Australian", "Austrian", "Canadian", "Japanese",
		"Mexican", "Monegasque", "Argentine", "Belgian",
	}
	constructorNames = []string{
		"Scuderia Veloce", "Apex GP", "Northwood Racing", "Falcon Motorsport",
		"Meridian F1", "Cavallo Corse", "Vector Racing", "Aurora GP",
		"Redline Engineering", "Stratos Grand Prix", "Pinnacle Racing",
		"Borealis F1",
	}
)

// Status strings per outcome class. Classification downstream is keyword
// based, so these must read like real timing-sheet statuses.
var (
	finishedStatuses = []string{"Finished"}
	lappedStatuses   = []string{"+1 Lap", "+2 Laps", "+3 Laps"}
	mechanicalCauses = []string{
		"Engine", "Gearbox", "Hydraulics", "Electrical", "Transmission",
		"Brakes", "Clutch", "Suspension", "Power Unit", "Turbo",
	}
	accidentCauses = []string{"Accident", "Collision", "Spun off", "Crash damage"}
	otherCauses    = []string{"Withdrew", "Disqualified", "Fuel pressure", "Overheating", "Wheel"}
)
