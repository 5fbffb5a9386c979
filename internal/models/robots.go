package models

// ManualOperations is the synthetic bucket for non-automated operations.
// It never counts toward automation totals.
const ManualOperations = "OPERAÇÕES NA MÃO"

// RobotInfo describes a roster robot.
type RobotInfo struct {
	Name    string
	Margem  string
	LogoURL string
}

// Roster is the master robot list. Order matters: it seeds the daily
// report buckets and the ledger's per-robot columns.
var Roster = []RobotInfo{
	{Name: "ATRION WIN", Margem: "Margem 50k: 5 contratos WDO", LogoURL: "https://i.ibb.co/Gfn4rkTx/ATRION-WIN.png"},
	{Name: "ATRION WDO", Margem: "Margem 50k: 10 contratos WIN", LogoURL: "https://i.ibb.co/Gfn4rkTx/ATRION-WIN.png"},
	{Name: "CRONOS WDO", Margem: "Margem 50k: 5 contratos WDO", LogoURL: "https://i.ibb.co/ynrKMFFj/CRONOS.png"},
	{Name: "ORION WIN", Margem: "Margem 50k: 10 contratos WIN", LogoURL: "https://i.ibb.co/GgN9Q1h/ORION.png"},
	{Name: "ZARION", Margem: "Margem 50k: 10 contratos WIN", LogoURL: "https://i.ibb.co/MD7sk6Tm/ZARION.png"},
	{Name: "GIRION", Margem: "N/A", LogoURL: ""},
	{Name: ManualOperations, Margem: "Manual", LogoURL: ""},
}

// AutomationRobots lists roster robots excluding the manual bucket.
var AutomationRobots = automationRobots()

// RobotsWithPartials report partial exits as separate rows sharing an
// entry time.
var RobotsWithPartials = []string{"ATRION WIN", "ORION WIN"}

// MagicRobots maps broker magic codes to robot names.
var MagicRobots = map[string]string{
	"175939": "ATRION WIN",
	"135791": "ORION WIN",
	"303030": "CRONOS WDO",
	"404040": "ZARION",
}

// IgnoredMagics are magic codes that never belong to a strategy.
var IgnoredMagics = []string{"1247", "0"}

func automationRobots() []string {
	names := make([]string, 0, len(Roster))
	for _, r := range Roster {
		if r.Name != ManualOperations {
			names = append(names, r.Name)
		}
	}
	return names
}

// HasPartials reports whether the robot reports partial exits.
func HasPartials(robot string) bool {
	for _, r := range RobotsWithPartials {
		if r == robot {
			return true
		}
	}
	return false
}

// IsIgnoredMagic reports whether the magic code is a non-strategy sentinel.
func IsIgnoredMagic(magic string) bool {
	for _, m := range IgnoredMagics {
		if m == magic {
			return true
		}
	}
	return false
}

// RobotForMagic resolves a magic code to a robot name, falling back to
// "ID: <code>".
func RobotForMagic(magic string) string {
	if name, ok := MagicRobots[magic]; ok {
		return name
	}
	return "ID: " + magic
}

// LookupRoster returns the roster entry for name.
func LookupRoster(name string) (RobotInfo, bool) {
	for _, r := range Roster {
		if r.Name == name {
			return r, true
		}
	}
	return RobotInfo{}, false
}
