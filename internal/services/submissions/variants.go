package submissions

import (
	"github.com/BearBump/FreightSite/internal/storage"
)

// Field описывает одно поле формы. Порядок полей в Variant задаёт порядок проверки.
type Field struct {
	Name     string
	Label    string
	Required bool
	// Choices ограничивает допустимые значения, пустой список разрешает любое.
	Choices []string
	// Default подставляется вместо пустого значения.
	Default string
	// Message задаёт текст ошибки для пустого обязательного поля.
	Message string
}

type Variant struct {
	Kind   string
	Table  string
	Source string
	Fields []Field
}

func (v Variant) FieldNames() []string {
	out := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		out = append(out, f.Name)
	}
	return out
}

func (v Variant) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

const (
	KindContactPage        = "contact_page"
	KindConsultation       = "consultation"
	KindPartnerApplication = "partner_application"
	KindFooterContact      = "footer_contact"
)

var Departments = []string{"sales", "support", "technical", "operations", "partnerships", "billing"}

var Urgencies = []string{"low", "normal", "urgent"}

const footerMessage = "Please fill in all required fields"

var (
	ContactPage = Variant{
		Kind:   KindContactPage,
		Table:  storage.TableContactPageSubmissions,
		Source: "contact_page",
		Fields: []Field{
			{Name: "name", Label: "Full Name", Required: true, Message: "Name is required"},
			{Name: "email", Label: "Email Address", Required: true, Message: "Email is required"},
			{Name: "phone", Label: "Phone Number", Required: true, Message: "Phone number is required"},
			{Name: "company", Label: "Company Name"},
			{Name: "subject", Label: "Subject", Required: true, Message: "Subject is required"},
			{Name: "department", Label: "Department", Required: true, Message: "Department is required", Choices: Departments},
			{Name: "urgency", Label: "Urgency", Choices: Urgencies, Default: "normal"},
			{Name: "message", Label: "Message", Required: true, Message: "Message is required"},
		},
	}

	Consultation = Variant{
		Kind:   KindConsultation,
		Table:  storage.TableConsultationRequests,
		Source: "become_partner_consultation",
		Fields: []Field{
			{Name: "name", Label: "Full Name", Required: true, Message: "Name is required"},
			{Name: "email", Label: "Email Address", Required: true, Message: "Email is required"},
			{Name: "phone", Label: "Phone Number", Required: true, Message: "Phone number is required"},
		},
	}

	PartnerApplication = Variant{
		Kind:   KindPartnerApplication,
		Table:  storage.TablePartnerApplications,
		Source: "become_partner_application",
		Fields: []Field{
			{Name: "first_name", Label: "First Name", Required: true, Message: "First name is required"},
			{Name: "last_name", Label: "Last Name", Required: true, Message: "Last name is required"},
			{Name: "company_name", Label: "Company Name", Required: true, Message: "Company name is required"},
			{Name: "email", Label: "Email Address", Required: true, Message: "Email is required"},
			{Name: "phone", Label: "Phone Number", Required: true, Message: "Phone number is required"},
			{Name: "website", Label: "Website"},
			{Name: "company_overview", Label: "Company Overview"},
			{Name: "message", Label: "Message", Required: true, Message: "Message is required"},
		},
	}

	FooterContact = Variant{
		Kind:   KindFooterContact,
		Table:  storage.TableContactSubmissionsFrieght,
		Source: "contact_form",
		Fields: []Field{
			{Name: "name", Label: "Name", Required: true, Message: footerMessage},
			{Name: "email", Label: "Email", Required: true, Message: footerMessage},
			{Name: "phone", Label: "Phone"},
			{Name: "company", Label: "Company"},
			{Name: "message", Label: "Message", Required: true, Message: footerMessage},
		},
	}
)

var variants = map[string]Variant{
	KindContactPage:        ContactPage,
	KindConsultation:       Consultation,
	KindPartnerApplication: PartnerApplication,
	KindFooterContact:      FooterContact,
}

func VariantByKind(kind string) (Variant, bool) {
	v, ok := variants[kind]
	return v, ok
}

func Variants() []Variant {
	return []Variant{ContactPage, Consultation, PartnerApplication, FooterContact}
}
