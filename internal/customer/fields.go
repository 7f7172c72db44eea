package customer

import (
	"time"

	"fitnessmanager/internal/api"
)

const (
	LangEN = "en"
	LangES = "es"
)

var ErrUnsupportedLanguage = api.Validation("unsupported language")

// Field describes one customer attribute exposed by the customer-data view.
type Field struct {
	Name      string
	DisplayEN string
	DisplayES string
	Editable  bool
	value     func(*Customer) any
}

// Key returns the response key for lang. English uses the raw field name.
func (f Field) Key(lang string) string {
	if lang == LangES {
		return f.DisplayES
	}
	return f.Name
}

var fields = []Field{
	{"id", "ID", "ID", false, func(c *Customer) any { return c.ID }},
	{"first_name", "First Name", "Nombre", true, func(c *Customer) any { return c.FirstName }},
	{"last_name", "Last Name", "Apellido", true, func(c *Customer) any { return c.LastName }},
	{"passport_number", "Passport Number", "Número de Pasaporte", true, func(c *Customer) any { return c.PassportNumber }},
	{"date_of_birth", "Date of Birth", "Fecha de Nacimiento", true, func(c *Customer) any { return dateValue(c.DateOfBirth) }},
	{"email", "Email Address", "Dirección de correo electrónico", true, func(c *Customer) any { return c.Email }},
	{"phone_number", "Phone Number", "Número de Teléfono", true, func(c *Customer) any { return c.PhoneNumber }},
	{"address", "Address", "Dirección", true, func(c *Customer) any { return c.Address }},
	{"registration_date", "Registration Date", "Fecha de Registro", false, func(c *Customer) any { return c.RegistrationDate }},
	{"active_membership", "Active Membership", "Membresía Activa", true, func(c *Customer) any { return c.ActiveMembership }},
	{"membership_start_date", "Membership Start Date", "Fecha de Inicio de Membresía", true, func(c *Customer) any { return dateValue(c.MembershipStartDate) }},
	{"membership_end_date", "Membership End Date", "Fecha de Fin de Membresía", true, func(c *Customer) any { return dateValue(c.MembershipEndDate) }},
	{"weight", "Weight", "Peso", true, func(c *Customer) any { return c.Weight }},
	{"height", "Height", "Altura", true, func(c *Customer) any { return c.Height }},
	{"notes", "Notes", "Notas", true, func(c *Customer) any { return c.Notes }},
	{"is_staff", "Staff Status", "Es Personal", false, func(c *Customer) any { return c.IsStaff }},
}

var defaultFieldNames = []string{
	"first_name",
	"last_name",
	"passport_number",
	"date_of_birth",
	"email",
	"phone_number",
	"active_membership",
	"membership_start_date",
	"weight",
	"height",
	"notes",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// Fields returns the field table. all=false selects the default subset in
// display order.
func Fields(all bool) []Field {
	if all {
		return fields
	}
	out := make([]Field, 0, len(defaultFieldNames))
	for _, name := range defaultFieldNames {
		out = append(out, fieldsByName[name])
	}
	return out
}

// FieldInfo is the public description of a Field.
type FieldInfo struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Editable bool   `json:"editable"`
}

// Describe lists the selected fields with their label in lang.
func Describe(lang string, all bool) ([]FieldInfo, error) {
	if lang != LangEN && lang != LangES {
		return nil, ErrUnsupportedLanguage.WithDetail(lang)
	}
	selected := Fields(all)
	out := make([]FieldInfo, 0, len(selected))
	for _, f := range selected {
		label := f.DisplayEN
		if lang == LangES {
			label = f.DisplayES
		}
		out = append(out, FieldInfo{Name: f.Name, Label: label, Editable: f.Editable})
	}
	return out, nil
}

// Translate renders c as a map keyed for lang.
func Translate(c *Customer, lang string, all bool) (map[string]any, error) {
	if lang != LangEN && lang != LangES {
		return nil, ErrUnsupportedLanguage.WithDetail(lang)
	}
	out := make(map[string]any)
	for _, f := range Fields(all) {
		out[f.Key(lang)] = f.value(c)
	}
	return out, nil
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
