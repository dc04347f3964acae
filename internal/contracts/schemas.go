package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"versus-web/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const (
	SchemaConsentRecord = "consent_record"
	SchemaLead          = "lead"
)

// missingPropsRe вытаскивает имена полей из сообщения "missing properties: 'a', 'b'"
var missingPropsRe = regexp.MustCompile(`'([^']+)'`)

// Validator хранит скомпилированные схемы, ключ - имя файла без расширения.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator компилирует все встроенные схемы.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	paths, err := fs.Glob(schemasFS, "schemas/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded schemas: %w", err)
	}

	// Сначала добавляем все ресурсы, чтобы схемы могли ссылаться друг на друга через $ref
	for _, path := range paths {
		data, err := schemasFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", path, err)
		}
		v.schemas[keyFromPath(path)] = schema
	}

	return v, nil
}

// keyFromPath: "schemas/consent_record.json" -> "consent_record"
func keyFromPath(path string) string {
	name := path[strings.LastIndex(path, "/")+1:]
	return strings.TrimSuffix(name, ".json")
}

// Validate проверяет сырой JSON по схеме с именем name.
func (v *Validator) Validate(name string, raw []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("schema %q is not registered", name)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}

	return schema.Validate(doc)
}

// ValidateConsent реализует port.ConsentValidatorPort.
func (v *Validator) ValidateConsent(raw []byte) error {
	if err := v.Validate(SchemaConsentRecord, raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConsent, err)
	}
	return nil
}

// ValidateLead реализует port.LeadValidatorPort. Ошибки схемы
// раскладываются по полям формы.
func (v *Validator) ValidateLead(input domain.LeadInput) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	err = v.Validate(SchemaLead, raw)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	return &domain.LeadValidationError{Fields: fieldErrors(validationErr)}
}

func fieldErrors(verr *jsonschema.ValidationError) map[string]string {
	fields := make(map[string]string)
	for _, basic := range verr.BasicOutput().Errors {
		if basic.Error == "" || strings.HasPrefix(basic.Error, "doesn't validate with") {
			continue
		}

		location := strings.TrimPrefix(basic.InstanceLocation, "/")
		if location != "" {
			if _, exists := fields[location]; !exists {
				fields[location] = basic.Error
			}
			continue
		}

		// required-ошибки приходят на корень документа
		if strings.HasPrefix(basic.Error, "missing properties") {
			for _, match := range missingPropsRe.FindAllStringSubmatch(basic.Error, -1) {
				if _, exists := fields[match[1]]; !exists {
					fields[match[1]] = "required"
				}
			}
		}
	}
	if len(fields) == 0 {
		fields[""] = verr.Error()
	}
	return fields
}
