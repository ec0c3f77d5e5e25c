package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

// pathID parses the :id route parameter. Anything that is not a positive
// integer cannot name a stored record and is reported as not found.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(apperrors.MsgNotFound)
	}
	return id, nil
}

// bodyInput decodes the request body into a generic field map for the
// validator. JSON objects and url-encoded forms are accepted; an empty body
// yields an empty map. JSON numbers stay json.Number so large ids keep their
// precision.
func bodyInput(c *fiber.Ctx) (map[string]any, error) {
	input := map[string]any{}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm) {
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			input[string(key)] = string(value)
		})
		return input, nil
	}

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return input, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil || input == nil {
		return nil, apperrors.NewBadRequest(apperrors.MsgInvalidPayload)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewBadRequest(apperrors.MsgInvalidPayload)
	}
	return input, nil
}
