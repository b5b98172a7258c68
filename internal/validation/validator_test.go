package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/pkg/apperror"
)

func validSolo() SoloForm {
	return SoloForm{
		TeamLeaderName:     "Rohan Sharma",
		TeamLeaderID:       "5123456789",
		TeamLeaderWhatsapp: "9876543210",
		TransactionID:      "TXN12345678",
	}
}

func validSquad() SquadForm {
	return SquadForm{
		DuoForm: DuoForm{
			SoloForm:    validSolo(),
			TeamName:    "Alpha Wolves",
			Player2Name: "Aman Verma",
			Player2ID:   "5123456790",
		},
		Player3Name: "Kunal Rao",
		Player3ID:   "5123456791",
		Player4Name: "Vikram Singh",
		Player4ID:   "5123456792",
	}
}

func TestSoloFormValid(t *testing.T) {
	f := validSolo()
	f.TeamLeaderName = "  Rohan Sharma  "
	assert.Nil(t, Struct(&f))
	assert.Equal(t, "Rohan Sharma", f.TeamLeaderName)
}

func TestSoloFormMessages(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(f *SoloForm)
		field string
		msg   string
	}{
		{"short name", func(f *SoloForm) { f.TeamLeaderName = "Ro" }, "team_leader_name", "Name must be at least 3 characters"},
		{"blank name", func(f *SoloForm) { f.TeamLeaderName = "   " }, "team_leader_name", "Name must be at least 3 characters"},
		{"digits in name", func(f *SoloForm) { f.TeamLeaderName = "Rohan99" }, "team_leader_name", "Name should only contain letters"},
		{"long name", func(f *SoloForm) { f.TeamLeaderName = "Abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk" }, "team_leader_name", "Name must be less than 50 characters"},
		{"alpha leader id", func(f *SoloForm) { f.TeamLeaderID = "abc12345" }, "team_leader_id", "Game ID must contain only numbers"},
		{"short leader id", func(f *SoloForm) { f.TeamLeaderID = "1234" }, "team_leader_id", "Game ID must be at least 5 characters"},
		{"landline", func(f *SoloForm) { f.TeamLeaderWhatsapp = "5123456789" }, "team_leader_whatsapp", "Please enter valid 10-digit Indian mobile number"},
		{"short phone", func(f *SoloForm) { f.TeamLeaderWhatsapp = "98765" }, "team_leader_whatsapp", "Please enter valid 10-digit Indian mobile number"},
		{"short txn", func(f *SoloForm) { f.TransactionID = "TXN1" }, "transaction_id", "Transaction ID must be at least 8 characters"},
		{"bad vote", func(f *SoloForm) { f.YoutubeVote = "maybe" }, "youtube_vote", "YouTube streaming vote must be true or false"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validSolo()
			tc.edit(&f)
			errs := Struct(&f)
			require.NotNil(t, errs)
			assert.Equal(t, tc.msg, errs[tc.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestDuoPlayerIDAllowsLetters(t *testing.T) {
	f := DuoForm{SoloForm: validSolo(), TeamName: "Night Owls 2", Player2Name: "Aman Verma", Player2ID: "AB12345"}
	assert.Nil(t, Struct(&f))
}

func TestDuoTeamName(t *testing.T) {
	f := DuoForm{SoloForm: validSolo(), TeamName: "Owls!", Player2Name: "Aman Verma", Player2ID: "12345"}
	errs := Struct(&f)
	assert.Equal(t, "Team name should only contain letters and numbers", errs["team_name"])
}

func TestSquadRequiresEveryPlayer(t *testing.T) {
	f := SquadForm{DuoForm: DuoForm{SoloForm: validSolo()}}
	errs := Struct(&f)
	for _, field := range []string{"team_name", "player2_name", "player2_id", "player3_name", "player3_id", "player4_name", "player4_id"} {
		assert.Contains(t, errs, field)
	}
}

func TestApplySoloLeavesPlayersNil(t *testing.T) {
	f := validSolo()
	var r models.Registration
	f.Apply(&r)

	assert.Equal(t, models.TournamentSolo, r.TournamentType)
	assert.Nil(t, r.TeamName)
	assert.Nil(t, r.Player2Name)
	assert.Nil(t, r.Player3Name)
	assert.Nil(t, r.Player4Name)
	assert.True(t, r.YoutubeStreamingVote)
	assert.Equal(t, 1, r.PlayerCount())
}

func TestApplySquadPopulatesAllPlayers(t *testing.T) {
	f := validSquad()
	f.YoutubeVote = "false"
	require.Nil(t, Struct(&f))

	var r models.Registration
	f.Apply(&r)

	assert.Equal(t, models.TournamentSquad, r.TournamentType)
	require.NotNil(t, r.TeamName)
	assert.Equal(t, "Alpha Wolves", *r.TeamName)
	assert.Equal(t, "Aman Verma", *r.Player2Name)
	assert.Equal(t, "Kunal Rao", *r.Player3Name)
	assert.Equal(t, "5123456792", *r.Player4ID)
	assert.False(t, r.YoutubeStreamingVote)
	assert.Equal(t, 4, r.PlayerCount())
}

func TestNewRegistrationForm(t *testing.T) {
	f, ok := NewRegistrationForm(models.TournamentDuo)
	require.True(t, ok)
	assert.IsType(t, &DuoForm{}, f)

	_, ok = NewRegistrationForm(models.TournamentType("trio"))
	assert.False(t, ok)
}

func TestAdminSignupForm(t *testing.T) {
	f := AdminSignupForm{Email: "admin@example.com", Password: "supersecret", ConfirmPassword: "supersecre"}
	errs := Struct(&f)
	assert.Equal(t, "Passwords don't match", errs["confirm_password"])

	f = AdminSignupForm{Email: "nope", Password: "short", ConfirmPassword: "short"}
	errs = Struct(&f)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Password must be at least 8 characters", errs["password"])
}

func TestPasswordsAreNotTrimmed(t *testing.T) {
	f := AdminLoginForm{Email: " admin@example.com ", Password: " secret "}
	assert.Nil(t, Struct(&f))
	assert.Equal(t, "admin@example.com", f.Email)
	assert.Equal(t, " secret ", f.Password)
}

func TestContactForm(t *testing.T) {
	f := ContactForm{Name: "A", Email: "a@b.co", Phone: "12345", Subject: "Hi", Message: "short"}
	errs := Struct(&f)
	assert.Equal(t, "Name must be at least 2 characters", errs["name"])
	assert.Equal(t, "Phone number must be at least 10 digits", errs["phone"])
	assert.Equal(t, "Subject must be at least 5 characters", errs["subject"])
	assert.Equal(t, "Message must be at least 10 characters", errs["message"])
	assert.NotContains(t, errs, "email")
}

func TestFieldErrorsErr(t *testing.T) {
	assert.NoError(t, FieldErrors(nil).Err())

	err := FieldErrors{"team_name": "bad"}.Err()
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}
