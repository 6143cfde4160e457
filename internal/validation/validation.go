// Package validation holds the per-field rule tables applied before every
// write of a user, recipe or favorite recipe.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/tastebite-server/internal/model"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// check validates one raw value and returns its normalized form, or a
// client-facing message.
type check func(value any) (any, error)

type fieldRule struct {
	field    string
	required bool
	check    check
}

// Schema is an ordered rule table for one resource.
type Schema struct {
	rules []fieldRule
}

// Fields returns the field names known to the schema in table order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		names = append(names, r.field)
	}
	return names
}

func (s Schema) rule(field string) (fieldRule, bool) {
	for _, r := range s.rules {
		if r.field == field {
			return r, true
		}
	}
	return fieldRule{}, false
}

// Validate checks a single field and returns the normalized value.
func (s Schema) Validate(field string, value any) (any, error) {
	r, ok := s.rule(field)
	if !ok {
		return nil, model.NewValidationError(field, fmt.Sprintf("Unknown field %s", field))
	}
	normalized, err := r.check(value)
	if err != nil {
		return nil, model.NewValidationError(field, err.Error())
	}
	return normalized, nil
}

// ValidateAll runs the table over fields. Unknown fields are dropped. When
// partial is false every required field must be present. All failures are
// collected in table order.
func (s Schema) ValidateAll(fields model.Fields, partial bool) (model.Fields, error) {
	out := make(model.Fields, len(fields))
	var verrs model.ValidationErrors
	for _, r := range s.rules {
		value, ok := fields[r.field]
		if !ok {
			if r.required && !partial {
				verrs = append(verrs, model.ValidationError{
					Field:   r.field,
					Message: fmt.Sprintf("%s is required", r.field),
				})
			}
			continue
		}
		normalized, err := r.check(value)
		if err != nil {
			verrs = append(verrs, model.ValidationError{Field: r.field, Message: err.Error()})
			continue
		}
		out[r.field] = normalized
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	return out, nil
}

func nonEmptyString(message string) check {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || validate.Var(strings.TrimSpace(s), "required") != nil {
			return nil, errors.New(message)
		}
		return s, nil
	}
}

// limited caps the string c returns at n characters, the width of the
// backing column.
func limited(c check, name string, n int) check {
	return func(value any) (any, error) {
		v, err := c(value)
		if err != nil {
			return nil, err
		}
		if str, ok := v.(string); ok && validate.Var(str, fmt.Sprintf("max=%d", n)) != nil {
			return nil, fmt.Errorf("%s must be at most %d characters", name, n)
		}
		return v, nil
	}
}

func anyString(message string) check {
	return func(value any) (any, error) {
		if value == nil {
			return "", nil
		}
		s, ok := value.(string)
		if !ok {
			return nil, errors.New(message)
		}
		return s, nil
	}
}

func category(value any) (any, error) {
	s, _ := value.(string)
	if validate.Var(s, "required,oneof="+joinCategories(" ")) != nil {
		return nil, fmt.Errorf("Category must be one of: %s", joinCategories(", "))
	}
	return model.Category(s), nil
}

func joinCategories(sep string) string {
	names := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, sep)
}

func rating(value any) (any, error) {
	f, ok := toFloat(value)
	if !ok || validate.Var(f, "gte=0,lte=5") != nil {
		return nil, errors.New("Rating must be a number between 0 and 5")
	}
	return f, nil
}

func peopleServed(value any) (any, error) {
	n, ok := toInt(value)
	if !ok || validate.Var(n, "gt=0") != nil {
		return nil, errors.New("People served must be a positive integer")
	}
	return n, nil
}

// stringList accepts a newline-delimited string or a list of strings and
// returns the trimmed, non-empty entries.
func stringList(name, itemsName string) check {
	return func(value any) (any, error) {
		var raw []string
		switch v := value.(type) {
		case string:
			raw = strings.Split(v, "\n")
		case []string:
			raw = v
		case []any:
			raw = make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("All %s must be strings", itemsName)
				}
				raw = append(raw, s)
			}
		default:
			return nil, fmt.Errorf("%s must be a list", name)
		}

		items := make([]string, 0, len(raw))
		for _, s := range raw {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		if validate.Var(items, "min=1") != nil {
			return nil, fmt.Errorf("%s must not be empty", name)
		}
		return items, nil
	}
}

func email(value any) (any, error) {
	s, ok := value.(string)
	if !ok || validate.Var(s, "required") != nil {
		return nil, errors.New("Email is required")
	}
	if validate.Var(s, "simple_email") != nil {
		return nil, errors.New("Invalid email format")
	}
	return s, nil
}

// password rejects inputs bcrypt cannot hash.
func password(value any) (any, error) {
	v, err := nonEmptyString("Password is required")(value)
	if err != nil {
		return nil, err
	}
	if validate.Var(len(v.(string)), "lte=72") != nil {
		return nil, errors.New("Password must be at most 72 bytes")
	}
	return v, nil
}

func role(value any) (any, error) {
	s, _ := value.(string)
	if validate.Var(s, "required,oneof=user admin") != nil {
		return nil, errors.New(`Invalid role. Must be either "user" or "admin"`)
	}
	return model.Role(s), nil
}

var (
	username = limited(nonEmptyString("Username is required"), "Username", 80)
	userMail = limited(email, "Email", 120)
	imageURL = limited(nonEmptyString("Image URL is required"), "Image URL", 255)
	title    = limited(nonEmptyString("Title is required"), "Title", 255)
	country  = limited(nonEmptyString("Country is required"), "Country", 100)
	cookTime = limited(nonEmptyString("Cooking time is required"), "Cooking time", 50)
	video    = limited(anyString("Video link must be a string"), "Video link", 255)
)

// SignUp validates the registration form.
var SignUp = Schema{rules: []fieldRule{
	{field: "username", required: true, check: username},
	{field: "email", required: true, check: userMail},
	{field: "password", required: true, check: password},
	{field: "image_url", required: true, check: imageURL},
}}

// User validates profile updates. Passwords are set at signup only.
var User = Schema{rules: []fieldRule{
	{field: "username", required: true, check: username},
	{field: "email", required: true, check: userMail},
	{field: "image_url", required: true, check: imageURL},
	{field: "role", check: role},
}}

// Recipe validates recipe fields. Ingredients and procedure normalize to lists.
var Recipe = Schema{rules: []fieldRule{
	{field: "title", required: true, check: title},
	{field: "country", required: true, check: country},
	{field: "rating", required: true, check: rating},
	{field: "ingredients", required: true, check: stringList("Ingredients", "ingredients")},
	{field: "procedure", required: true, check: stringList("Procedure", "procedure steps")},
	{field: "people_served", required: true, check: peopleServed},
	{field: "category", required: true, check: category},
	{field: "cooking_time", required: true, check: cookTime},
	{field: "image_url", required: true, check: imageURL},
	{field: "video_link", check: video},
}}

// FavoriteRecipe validates favorite recipe fields. Ingredients and procedure
// stay free text.
var FavoriteRecipe = Schema{rules: []fieldRule{
	{field: "title", required: true, check: title},
	{field: "country", required: true, check: country},
	{field: "rating", required: true, check: rating},
	{field: "ingredients", required: true, check: nonEmptyString("Ingredients are required")},
	{field: "procedure", required: true, check: nonEmptyString("Procedure is required")},
	{field: "people_served", required: true, check: peopleServed},
	{field: "category", required: true, check: category},
	{field: "cooking_time", required: true, check: cookTime},
	{field: "image_url", required: true, check: imageURL},
	{field: "video_link", check: video},
}}
