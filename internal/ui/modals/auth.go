package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// Auth modal modes
const (
	AuthModeLogin    = "login"
	AuthModeRegister = "register"
	AuthModeReset    = "reset"
)

// AuthState is the sign-in modal. One form per mode; switching modes
// rebuilds the form but keeps the entered email.
type AuthState struct {
	Mode string

	form *huh.Form

	email    string
	password string
	confirm  string

	errBanner     string
	successBanner string
}

func (*AuthState) modalState() {}

func (s *AuthState) Title() string {
	switch s.Mode {
	case AuthModeRegister:
		return "Create Account"
	case AuthModeReset:
		return "Reset Password"
	default:
		return "Sign In"
	}
}

func (s *AuthState) Help() string {
	switch s.Mode {
	case AuthModeRegister:
		return "Enter: create  ctrl+r: sign in instead  Esc: cancel"
	case AuthModeReset:
		return "Enter: send reset link  ctrl+r: sign in  Esc: cancel"
	default:
		return "Enter: sign in  ctrl+r: register  ctrl+g: google  ctrl+p: forgot password  Esc: cancel"
	}
}

func (s *AuthState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	parts := []string{title}

	if s.errBanner != "" {
		parts = append(parts, ModalBannerErrStyle.Render(s.errBanner))
	}
	if s.successBanner != "" {
		parts = append(parts, ModalBannerStyle.Render(s.successBanner))
	}

	parts = append(parts, s.form.View())
	parts = append(parts, ModalHelpStyle.Render(s.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *AuthState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Email returns the entered email
func (s *AuthState) Email() string { return s.email }

// Password returns the entered password
func (s *AuthState) Password() string { return s.password }

// PasswordsMatch reports whether password and confirmation agree. Always
// true outside register mode.
func (s *AuthState) PasswordsMatch() bool {
	return s.Mode != AuthModeRegister || s.password == s.confirm
}

// SetBanners sets the error and success banners shown above the form
func (s *AuthState) SetBanners(errMsg, successMsg string) {
	s.errBanner = errMsg
	s.successBanner = successMsg
}

// SwitchMode rebuilds the form for a different mode, keeping the email
func (s *AuthState) SwitchMode(mode string) {
	s.Mode = mode
	s.password = ""
	s.confirm = ""
	s.errBanner = ""
	s.successBanner = ""
	s.buildForm()
}

func (s *AuthState) buildForm() {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(ModalInputCharLimit).
			Value(&s.email),
	}

	if s.Mode != AuthModeReset {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.password))
	}

	if s.Mode == AuthModeRegister {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.confirm))
	}

	s.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 4).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
}

// NewAuthState creates the sign-in modal
func NewAuthState() *AuthState {
	s := &AuthState{Mode: AuthModeLogin}
	s.buildForm()
	return s
}
