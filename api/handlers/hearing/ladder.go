package hearing

// Track identifies who conducts a hearing level
type Track string

// Hearing tracks. Mediation sits with the barangay council, conciliation with
// the Lupon Tagapamayapa.
const (
	TrackCouncil Track = "Council"
	TrackLupon   Track = "Lupon"
)

// Level is the ladder rung assigned to the next hearing of a case
type Level struct {
	Label string `json:"label"`
	Track Track  `json:"track"`
}

var ladder = []Level{
	{Label: "1st MEDIATION", Track: TrackCouncil},
	{Label: "2nd MEDIATION", Track: TrackCouncil},
	{Label: "3rd MEDIATION", Track: TrackCouncil},
	{Label: "1st Conciliation Proceedings", Track: TrackLupon},
	{Label: "2nd Conciliation Proceedings", Track: TrackLupon},
	{Label: "3rd Conciliation Proceedings", Track: TrackLupon},
}

// LevelFor returns the level of the next hearing given how many hearing
// schedules the case already has, in any closed state. Saturates at the
// terminal level so a count past the cap still reports 3rd Conciliation.
func LevelFor(scheduleCount int) Level {
	if scheduleCount < 0 {
		scheduleCount = 0
	}
	if scheduleCount >= len(ladder) {
		scheduleCount = len(ladder) - 1
	}
	return ladder[scheduleCount]
}
