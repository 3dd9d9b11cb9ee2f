package domain

// ApplicationSwipe is the outcome of a player swiping right on a team.
type ApplicationSwipe struct {
	Application *Application
	Matched     bool
	Created     bool
}

// InvitationSwipe is the outcome of a captain swiping right on a player.
type InvitationSwipe struct {
	Invitation *Invitation
	Matched    bool
	Created    bool
}
