package collect

import (
	"reflect"
	"testing"
)

func validForm() Form {
	return Form{
		FullName:        "Jane Doe",
		Email:           "jane.doe@example.com",
		Phone:           "+1 (555) 123-4567",
		YearsExperience: "5",
		DesiredRole:     "Backend Developer",
		Location:        "San Francisco, CA",
		TechStack:       "Python, SQL",
	}
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	if errs := validForm().Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"missing name", func(f *Form) { f.FullName = "" }, "Full name"},
		{"name with digits", func(f *Form) { f.FullName = "R2D2" }, "Full name"},
		{"bad email", func(f *Form) { f.Email = "not-an-email" }, "Email address"},
		{"bad phone", func(f *Form) { f.Phone = "call me" }, "Phone number"},
		{"missing role", func(f *Form) { f.DesiredRole = "" }, "Desired position"},
		{"missing location", func(f *Form) { f.Location = "" }, "Current location"},
		{"missing stack", func(f *Form) { f.TechStack = "" }, "Tech stack"},
		{"blank stack entries", func(f *Form) { f.TechStack = " , ," }, "Tech stack"},
		{"non-numeric experience", func(f *Form) { f.YearsExperience = "five" }, "Years of experience"},
		{"negative experience", func(f *Form) { f.YearsExperience = "-1" }, "Years of experience"},
		{"experience too high", func(f *Form) { f.YearsExperience = "51" }, "Years of experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			errs := f.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate() passed, want error")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention field %q", errs, tt.wantField)
			}
		})
	}
}

func TestProfile_BuildsCandidateProfile(t *testing.T) {
	f := validForm()
	f.TechStack = " Python , SQL,,  React "

	p, err := f.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.FullName != "Jane Doe" || p.YearsExperience != 5 {
		t.Errorf("profile = %+v", p)
	}
	want := []string{"Python", "SQL", "React"}
	if !reflect.DeepEqual(p.TechStack, want) {
		t.Errorf("TechStack = %v, want %v", p.TechStack, want)
	}
}

func TestProfile_ReturnsValidationError(t *testing.T) {
	f := validForm()
	f.Email = "nope"

	_, err := f.Profile()
	if err == nil {
		t.Fatal("Profile: expected error")
	}
}

func TestParseTechStack(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Python, JavaScript, React", []string{"Python", "JavaScript", "React"}},
		{"Go", []string{"Go"}},
		{"  Go ,, Rust  ", []string{"Go", "Rust"}},
		{", ,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseTechStack(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTechStack(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
