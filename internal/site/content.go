package site

import "github.com/tournamentpro/backend/internal/games"

// Brand is the public site name.
const Brand = "TournamentPro"

// NavLink is one entry of the top navigation.
type NavLink struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// Feature is a landing page highlight.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GameCard links the landing page to a game page.
type GameCard struct {
	ID          games.ID `json:"id"`
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Banner      string   `json:"banner"`
}

// Section is a titled block of disclaimer paragraphs.
type Section struct {
	Icon    string   `json:"icon"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Point is a short titled note.
type Point struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactChannel is a way to reach support. Link is empty for non-clickable entries.
type ContactChannel struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link,omitempty"`
}

// FAQ is a question shown on the contact page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var navLinks = []NavLink{
	{Path: "/", Label: "Home"},
	{Path: "/bgmi", Label: "BGMI"},
	{Path: "/freefire", Label: "Free Fire"},
	{Path: "/contact", Label: "Contact"},
	{Path: "/disclaimer", Label: "Disclaimer"},
}

var features = []Feature{
	{Icon: "trophy", Title: "Professional Tournaments", Description: "Join competitive BGMI and Free Fire tournaments with guaranteed prize pools"},
	{Icon: "users", Title: "Multiple Formats", Description: "Solo, Duo, and Squad modes available for all skill levels"},
	{Icon: "zap", Title: "Instant Registration", Description: "Quick and easy registration process with secure payment"},
	{Icon: "shield", Title: "Fair Play", Description: "Strict rules and regulations ensure fair competition for all players"},
}

var gameDescriptions = map[games.ID]string{
	games.BGMI:     "Battle Grounds Mobile India",
	games.FreeFire: "Garena Free Fire",
}

const disclaimerIntro = "Please read this disclaimer carefully before using TournamentPro services. By accessing and using our platform, you accept and agree to be bound by the terms outlined below."

const disclaimerFooter = "This disclaimer is subject to change without notice. Please review it periodically."

var disclaimerSections = []Section{
	{
		Icon:  "shield",
		Title: "General Disclaimer",
		Content: []string{
			"The information provided on TournamentPro is for general informational purposes only. All information on the site is provided in good faith, however we make no representation or warranty of any kind, express or implied, regarding the accuracy, adequacy, validity, reliability, availability or completeness of any information on the site.",
			"Under no circumstance shall we have any liability to you for any loss or damage of any kind incurred as a result of the use of the site or reliance on any information provided on the site. Your use of the site and your reliance on any information on the site is solely at your own risk.",
		},
	},
	{
		Icon:  "alert-circle",
		Title: "Tournament Participation",
		Content: []string{
			"By participating in our tournaments, you acknowledge that gaming involves risk and competition. All participants must be of legal age (18 years or above) or have parental/guardian consent to participate.",
			"We reserve the right to disqualify any participant found violating tournament rules, using unfair means, hacks, cheats, or any third-party software that provides an unfair advantage.",
			"Tournament schedules, prize pools, and rules are subject to change at our discretion. Participants will be notified of any significant changes via registered WhatsApp number or email.",
			"We are not responsible for any technical issues, internet connectivity problems, device malfunctions, or game server issues that may affect your tournament experience.",
		},
	},
	{
		Icon:  "scale",
		Title: "Payment and Prizes",
		Content: []string{
			"All registration fees are non-refundable once the tournament has commenced. Refund requests must be made at least 2 hours before the tournament start time.",
			"Prize distribution is subject to verification of winning screenshots and compliance with tournament rules. Prizes will be transferred within 24-48 hours of verification.",
			"We reserve the right to withhold prizes if suspicious activity, rule violations, or fraudulent behavior is detected.",
			"All payments must be made through authorized payment channels only. We are not responsible for payments made to unauthorized third parties.",
			"Tax implications on prize winnings, if any, are the sole responsibility of the winner as per applicable laws.",
		},
	},
	{
		Icon:  "user-check",
		Title: "User Responsibilities",
		Content: []string{
			"Users are responsible for maintaining the confidentiality of their account credentials and registration information.",
			"You agree to provide accurate, current, and complete information during registration and to update such information to keep it accurate, current, and complete.",
			"You are responsible for all activities that occur under your account and must immediately notify us of any unauthorized use of your account.",
			"Users must respect other participants and maintain professional conduct during tournaments. Harassment, abusive language, or unsportsmanlike behavior will result in immediate disqualification.",
		},
	},
	{
		Icon:  "file-text",
		Title: "Intellectual Property",
		Content: []string{
			"All content, logos, trademarks, and intellectual property displayed on TournamentPro are owned by their respective owners. BGMI is a trademark of Krafton, Inc. Free Fire is a trademark of Garena International.",
			"We do not claim ownership of game content, characters, or in-game assets. Our platform is an independent tournament organizing service and is not officially affiliated with game developers.",
			"Screenshots, images, and content submitted by users remain the property of the users, but by submitting, you grant us a non-exclusive license to use such content for verification and promotional purposes.",
		},
	},
	{
		Icon:  "info",
		Title: "Limitation of Liability",
		Content: []string{
			"To the fullest extent permitted by applicable law, TournamentPro shall not be liable for any indirect, incidental, special, consequential, or punitive damages, or any loss of profits or revenues, whether incurred directly or indirectly.",
			"We do not guarantee uninterrupted or error-free service and are not liable for any delays, delivery failures, or any other loss or damage resulting from the transfer of data over communications networks and facilities.",
			"Our total liability to you for all claims arising from or related to the use of our services shall not exceed the amount you paid for tournament registration.",
		},
	},
}

var disclaimerPoints = []Point{
	{Title: "Age Restriction", Description: "Participants must be 18 years or older, or have parental consent if under 18."},
	{Title: "Fair Play Policy", Description: "Zero tolerance for cheating, hacking, or use of unauthorized software. Violations result in permanent ban."},
	{Title: "Privacy", Description: "We collect and process personal information in accordance with our Privacy Policy. Your data is used solely for tournament operations."},
	{Title: "Modifications", Description: "We reserve the right to modify, suspend, or discontinue any part of our services at any time without prior notice."},
	{Title: "Dispute Resolution", Description: "Any disputes arising from tournament participation will be resolved through mutual discussion. Our decision on rule violations is final."},
	{Title: "Contact", Description: "For any questions or concerns regarding this disclaimer, please contact our support team through the Contact page."},
}

var contactChannels = []ContactChannel{
	{Icon: "mail", Title: "Email Us", Content: "support@tournamentpro.com", Link: "mailto:support@tournamentpro.com"},
	{Icon: "phone", Title: "Call Us", Content: "+91 98765 43210", Link: "tel:+919876543210"},
	{Icon: "map-pin", Title: "Visit Us", Content: "Mumbai, Maharashtra, India"},
	{Icon: "clock", Title: "Working Hours", Content: "Mon-Sat: 10:00 AM - 8:00 PM"},
}

var faqs = []FAQ{
	{Question: "How do I register for a tournament?", Answer: "Navigate to either BGMI or Free Fire page, select your preferred tournament type (Solo/Duo/Squad), fill in the registration form with your team details, upload payment screenshot, and submit. You'll receive confirmation via WhatsApp once approved."},
	{Question: "What payment methods do you accept?", Answer: "We accept UPI payments. After filling the registration form, you'll need to upload a screenshot of your payment transaction along with the transaction ID for verification."},
	{Question: "When will I receive tournament details?", Answer: "Once your registration is approved by our admin team, you'll receive the room ID and password via WhatsApp 30 minutes before the tournament starts."},
	{Question: "How are prizes distributed?", Answer: "Winners and runner-ups receive their prizes via UPI transfer within 24-48 hours after tournament completion. You'll need to provide a winning screenshot for verification."},
	{Question: "Can I cancel my registration?", Answer: "Registration cancellations must be requested at least 2 hours before tournament start time. Contact us via WhatsApp with your registration details for cancellation requests."},
	{Question: "What if I face technical issues during the tournament?", Answer: "Contact our support team immediately via WhatsApp or call us during tournament hours. We have dedicated support staff to assist with technical issues."},
}

// gameCards builds the landing cards from the game registry so names and banners stay in one place.
func gameCards() []GameCard {
	all := games.All()
	cards := make([]GameCard, 0, len(all))
	for _, g := range all {
		cards = append(cards, GameCard{
			ID:          g.ID,
			Name:        g.Name,
			Path:        "/" + string(g.ID),
			Description: gameDescriptions[g.ID],
			Banner:      g.Banner,
		})
	}
	return cards
}
