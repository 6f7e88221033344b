package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormValidate(t *testing.T) {
	valid := Form{Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"}

	tests := []struct {
		name    string
		mutate  func(*Form)
		wantErr string
	}{
		{"valid", func(f *Form) {}, ""},
		{"empty name", func(f *Form) { f.Name = "" }, "name is required"},
		{"blank name", func(f *Form) { f.Name = "   " }, "name is required"},
		{"empty email", func(f *Form) { f.Email = "" }, "email is required"},
		{"email without at-sign", func(f *Form) { f.Email = "ann.x.com" }, "email must contain @"},
		{"age zero", func(f *Form) { f.Age = 0 }, "age must be between 1 and 150"},
		{"age 151", func(f *Form) { f.Age = 151 }, "age must be between 1 and 150"},
		{"age boundary low", func(f *Form) { f.Age = 1 }, ""},
		{"age boundary high", func(f *Form) { f.Age = 150 }, ""},
		{"empty course", func(f *Form) { f.Course = "" }, "course is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			err := f.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	age, err := parseAge(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, age)

	for _, raw := range []string{"", "abc", "0", "151", "-3"} {
		_, err := parseAge(raw)
		assert.Error(t, err, raw)
	}
}

func TestInputTrimsWhitespace(t *testing.T) {
	f := Form{Name: " Ann ", Email: " ann@x.com ", Age: 20, Course: " CS "}
	in := f.Input()
	assert.Equal(t, "Ann", in.Name)
	assert.Equal(t, "ann@x.com", in.Email)
	assert.Equal(t, "CS", in.Course)
}
