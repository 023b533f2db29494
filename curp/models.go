package curp

import "github.com/meridianapi/meridian-go/rest"

// DocumentData is the civil-registry document backing a CURP entry.
// Wire keys follow the registry's own camelCase naming.
type DocumentData struct {
	Foja                   string `json:"foja"`
	ClaveEntidadRegistro   string `json:"claveEntidadRegistro"`
	NumActa                string `json:"numActa"`
	Tomo                   string `json:"tomo"`
	AnioReg                string `json:"anioReg"`
	MunicipioRegistro      string `json:"municipioRegistro"`
	Libro                  string `json:"libro"`
	EntidadRegistro        string `json:"entidadRegistro"`
	ClaveMunicipioRegistro string `json:"claveMunicipioRegistro"`
}

// PersonalData is the person's registry record.
type PersonalData struct {
	Sexo            Gender    `json:"sexo"`
	Entidad         string    `json:"entidad"`
	Nacionalidad    string    `json:"nacionalidad"`
	StatusCurp      string    `json:"statusCurp"`
	Nombres         string    `json:"nombres"`
	SegundoApellido string    `json:"segundoApellido"`
	ClaveEntidad    string    `json:"claveEntidad"`
	DocProbatorio   string    `json:"docProbatorio"`
	FechaNacimiento rest.Date `json:"fechaNacimiento"`
	PrimerApellido  string    `json:"primerApellido"`
	CURP            string    `json:"curp" validate:"required"`
}

// QueryResult is the outcome of a CURP lookup. PDF is a deferred
// handle to the registry certificate; no bytes are fetched until
// requested.
type QueryResult struct {
	DocumentData DocumentData `json:"document_data"`
	PersonalData PersonalData `json:"personal_data"`
	PDFURL       string       `json:"pdf_url"`

	PDF *rest.Download `json:"-"`
}
