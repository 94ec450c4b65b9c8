// Package seed loads demonstration records from CUE into a store.
//
// A seed file is plain CUE data checked against the definitions in
// schema.cue (#Date, #Phone, #Role, #Gender, ...). Persons carry a local
// key that other records use to refer to them; Apply replaces keys with
// freshly generated person ids.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/registry/internal/domain"
)

//go:embed schema.cue
var schemaSource string

//go:embed seed.cue
var defaultSource []byte

// Person is a seeded person. Key is local to the seed file.
type Person struct {
	Key        string `json:"key"`
	First      string `json:"first"`
	Last       string `json:"last"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

type User struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Person   string `json:"person"`
	City     string `json:"city"`
}

type Birth struct {
	RegNo    int64  `json:"regno"`
	RegDate  string `json:"regdate"`
	RegPlace string `json:"regplace"`
	Gender   string `json:"gender"`
	Newborn  string `json:"newborn"`
	Father   string `json:"father"`
	Mother   string `json:"mother"`
}

type Marriage struct {
	RegNo    int64  `json:"regno"`
	RegDate  string `json:"regdate"`
	RegPlace string `json:"regplace"`
	Partner1 string `json:"partner1"`
	Partner2 string `json:"partner2"`
}

type Registration struct {
	RegNo   int64  `json:"regno"`
	RegDate string `json:"regdate"`
	Expiry  string `json:"expiry"`
	Plate   string `json:"plate"`
	VIN     string `json:"vin"`
	Owner   string `json:"owner"`
}

type Ticket struct {
	TNo       int64  `json:"tno"`
	RegNo     int64  `json:"regno"`
	Fine      int64  `json:"fine"`
	Violation string `json:"violation"`
	VDate     string `json:"vdate"`
}

type Payment struct {
	TNo    int64  `json:"tno"`
	PDate  string `json:"pdate"`
	Amount int64  `json:"amount"`
}

type Demerit struct {
	Date        string `json:"date"`
	Person      string `json:"person"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// Data is a decoded seed file.
type Data struct {
	Persons       []Person         `json:"persons"`
	Users         []User           `json:"users"`
	Births        []Birth          `json:"births"`
	Marriages     []Marriage       `json:"marriages"`
	Vehicles      []domain.Vehicle `json:"vehicles"`
	Registrations []Registration   `json:"registrations"`
	Tickets       []Ticket         `json:"tickets"`
	Payments      []Payment        `json:"payments"`
	Demerits      []Demerit        `json:"demerits"`
}

// LoadError reports a seed file that failed to compile or validate.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default loads the embedded demonstration seed.
func Default() (*Data, error) {
	return Load(defaultSource, "seed.cue")
}

// LoadFile loads a seed file from disk.
func LoadFile(path string) (*Data, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Load(src, path)
}

// Load compiles src, checks it against the seed schema and decodes it.
// filename is used in error positions only.
func Load(src []byte, filename string) (*Data, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.LookupPath(cue.ParsePath("#Seed")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var d Data
	if err := v.Decode(&d); err != nil {
		return nil, formatCUEError(err)
	}
	return &d, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	le := &LoadError{Field: "cue", Message: first.Error()}
	if path := first.Path(); len(path) > 0 {
		le.Field = strings.Join(path, ".")
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
