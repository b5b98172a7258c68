package validation

import (
	"strconv"

	"github.com/tournamentpro/backend/internal/models"
)

// RegistrationForm is a bracket-specific registration schema.
type RegistrationForm interface {
	// Apply copies the validated fields into r. Fields the bracket does not use stay nil.
	Apply(r *models.Registration)
}

// SoloForm is the base schema shared by every bracket: the team leader and payment reference.
type SoloForm struct {
	TeamLeaderName     string `form:"team_leader_name" json:"team_leader_name" validate:"required,min=3,max=50,personname" msg:"name"`
	TeamLeaderID       string `form:"team_leader_id" json:"team_leader_id" validate:"required,min=5,max=20,digits" msg:"gameid"`
	TeamLeaderWhatsapp string `form:"team_leader_whatsapp" json:"team_leader_whatsapp" validate:"required,inmobile" msg:"whatsapp"`
	TransactionID      string `form:"transaction_id" json:"transaction_id" validate:"required,min=8,max=50" msg:"txn"`
	YoutubeVote        string `form:"youtube_vote" json:"youtube_vote" validate:"omitempty,boolean" msg:"vote"`
}

// DuoForm extends SoloForm with a team name and a second player.
type DuoForm struct {
	SoloForm
	TeamName    string `form:"team_name" json:"team_name" validate:"required,min=3,max=30,teamname" msg:"team"`
	Player2Name string `form:"player2_name" json:"player2_name" validate:"required,min=3,max=50,personname" msg:"name"`
	Player2ID   string `form:"player2_id" json:"player2_id" validate:"required,min=5,max=20" msg:"gameid"`
}

// SquadForm extends DuoForm with players three and four.
type SquadForm struct {
	DuoForm
	Player3Name string `form:"player3_name" json:"player3_name" validate:"required,min=3,max=50,personname" msg:"name"`
	Player3ID   string `form:"player3_id" json:"player3_id" validate:"required,min=5,max=20" msg:"gameid"`
	Player4Name string `form:"player4_name" json:"player4_name" validate:"required,min=3,max=50,personname" msg:"name"`
	Player4ID   string `form:"player4_id" json:"player4_id" validate:"required,min=5,max=20" msg:"gameid"`
}

// NewRegistrationForm returns an empty form for the bracket.
func NewRegistrationForm(t models.TournamentType) (RegistrationForm, bool) {
	switch t {
	case models.TournamentSolo:
		return &SoloForm{}, true
	case models.TournamentDuo:
		return &DuoForm{}, true
	case models.TournamentSquad:
		return &SquadForm{}, true
	}
	return nil, false
}

// Vote returns the YouTube streaming opt-in. Absent means yes.
func (f *SoloForm) Vote() bool {
	if f.YoutubeVote == "" {
		return true
	}
	v, err := strconv.ParseBool(f.YoutubeVote)
	if err != nil {
		return true
	}
	return v
}

func (f *SoloForm) Apply(r *models.Registration) {
	r.TournamentType = models.TournamentSolo
	r.TeamLeaderName = f.TeamLeaderName
	r.TeamLeaderID = f.TeamLeaderID
	r.TeamLeaderWhatsapp = f.TeamLeaderWhatsapp
	r.TransactionID = f.TransactionID
	r.YoutubeStreamingVote = f.Vote()
}

func (f *DuoForm) Apply(r *models.Registration) {
	f.SoloForm.Apply(r)
	r.TournamentType = models.TournamentDuo
	r.TeamName = strPtr(f.TeamName)
	r.Player2Name = strPtr(f.Player2Name)
	r.Player2ID = strPtr(f.Player2ID)
}

func (f *SquadForm) Apply(r *models.Registration) {
	f.DuoForm.Apply(r)
	r.TournamentType = models.TournamentSquad
	r.Player3Name = strPtr(f.Player3Name)
	r.Player3ID = strPtr(f.Player3ID)
	r.Player4Name = strPtr(f.Player4Name)
	r.Player4ID = strPtr(f.Player4ID)
}

// AdminSignupForm is the body of POST /api/admin/signup.
type AdminSignupForm struct {
	Email           string `json:"email" validate:"required,email" msg:"email"`
	Password        string `json:"password" validate:"required,min=8" msg:"password" trim:"false"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password" msg:"confirm" trim:"false"`
}

// AdminLoginForm is the body of POST /api/admin/login.
type AdminLoginForm struct {
	Email    string `json:"email" validate:"required,email" msg:"email"`
	Password string `json:"password" validate:"required,min=6" msg:"loginpassword" trim:"false"`
}

// ContactForm is the body of POST /api/contact.
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100" msg:"contactname"`
	Email   string `json:"email" validate:"required,email,max=255" msg:"contactemail"`
	Phone   string `json:"phone" validate:"required,min=10,max=15" msg:"contactphone"`
	Subject string `json:"subject" validate:"required,min=5,max=200" msg:"subject"`
	Message string `json:"message" validate:"required,min=10,max=1000" msg:"message"`
}

func strPtr(s string) *string { return &s }
