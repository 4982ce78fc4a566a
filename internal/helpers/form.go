package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/joshua-takyi/findmymess/internal/models"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// ErrMalformedMenu is reported alongside a decoded input whose menu was
// dropped because it was not valid JSON.
var ErrMalformedMenu = errors.New("menu is not valid JSON")

// MessPayload is a decoded create or update body. MenuErr is set when the
// submitted menu was dropped for not being valid JSON.
type MessPayload struct {
	Input   *models.MessInput
	MenuErr error
}

type messFormValues struct {
	Name            *string  `schema:"name"`
	Area            *string  `schema:"area"`
	PriceRange      *string  `schema:"priceRange"`
	Phone           *string  `schema:"phone"`
	WhatsappLink    *string  `schema:"whatsappLink"`
	Photos          []string `schema:"photos"`
	IsMenuAvailable *string  `schema:"isMenuAvailable"`
	Menu            *string  `schema:"menu"`
}

type messJSONBody struct {
	Name            *string         `json:"name"`
	Area            *string         `json:"area"`
	PriceRange      *string         `json:"priceRange"`
	Phone           *string         `json:"phone"`
	WhatsappLink    *string         `json:"whatsappLink"`
	Photos          []string        `json:"photos"`
	IsMenuAvailable json.RawMessage `json:"isMenuAvailable"`
	Menu            json.RawMessage `json:"menu"`
	Logo            *models.Logo    `json:"logo"`
}

// DecodeMessForm reads a url-encoded or multipart submission. Every value
// arrives as text: isMenuAvailable is true only for "true" and menu carries
// JSON. A malformed menu is left unset and reported in MenuErr.
func DecodeMessForm(values url.Values) (*MessPayload, error) {
	var form messFormValues
	if err := formDecoder.Decode(&form, values); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	in := &models.MessInput{
		Name:         form.Name,
		Area:         form.Area,
		PriceRange:   form.PriceRange,
		Phone:        form.Phone,
		WhatsappLink: form.WhatsappLink,
		Photos:       compact(form.Photos),
	}
	if form.IsMenuAvailable != nil {
		in.IsMenuAvailable = parseFormBool(*form.IsMenuAvailable)
	}

	var menuErr error
	if form.Menu != nil {
		in.Menu, menuErr = parseMenu([]byte(*form.Menu))
	}
	return &MessPayload{Input: in, MenuErr: menuErr}, nil
}

// DecodeMessJSON reads a JSON submission. isMenuAvailable may be a boolean or
// the string form used by multipart clients, and menu may be an object or a
// JSON-encoded string.
func DecodeMessJSON(body []byte) (*MessPayload, error) {
	var payload messJSONBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	in := &models.MessInput{
		Name:         payload.Name,
		Area:         payload.Area,
		PriceRange:   payload.PriceRange,
		Phone:        payload.Phone,
		WhatsappLink: payload.WhatsappLink,
		Photos:       compact(payload.Photos),
		Logo:         payload.Logo,
	}

	if raw := bytes.TrimSpace(payload.IsMenuAvailable); len(raw) > 0 && string(raw) != "null" {
		var b bool
		var s string
		switch {
		case json.Unmarshal(raw, &b) == nil:
			in.IsMenuAvailable = &b
		case json.Unmarshal(raw, &s) == nil:
			in.IsMenuAvailable = parseFormBool(s)
		default:
			in.IsMenuAvailable = parseFormBool("")
		}
	}

	var menuErr error
	if raw := bytes.TrimSpace(payload.Menu); len(raw) > 0 && string(raw) != "null" {
		var s string
		if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
			in.Menu, menuErr = parseMenu([]byte(s))
		} else {
			in.Menu, menuErr = parseMenu(raw)
		}
	}
	return &MessPayload{Input: in, MenuErr: menuErr}, nil
}

func parseFormBool(s string) *bool {
	b := strings.TrimSpace(s) == "true"
	return &b
}

func parseMenu(raw []byte) (*models.WeeklyMenu, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var menu models.WeeklyMenu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMenu, err)
	}
	return &menu, nil
}

func compact(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
