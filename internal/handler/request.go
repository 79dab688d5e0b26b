package handler

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
)

// itemPayload holds the parsed body of an item create/update request.
type itemPayload struct {
	Price   float64
	StoreID int64
}

// credentialsPayload holds a parsed username/password body.
type credentialsPayload struct {
	Username string
	Password string
}

// isJSONRequest reports whether the request declares a JSON body.
func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// parseItemPayload reads the required price and store_id fields from a
// JSON or form-encoded body. The second return value maps each missing
// or malformed field to its help text; a nil map means the payload is valid.
func parseItemPayload(r *http.Request) (itemPayload, map[string]string) {
	if isJSONRequest(r) {
		return parseItemJSON(r)
	}
	return parseItemForm(r)
}

// parseItemJSON parses an item payload from a JSON body. Pointer fields
// distinguish absent keys from zero values.
func parseItemJSON(r *http.Request) (itemPayload, map[string]string) {
	var body struct {
		Price   *float64 `json:"price"`
		StoreID *int64   `json:"store_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return itemPayload{}, map[string]string{
			"price":    helpPriceRequired,
			"store_id": helpStoreIDRequired,
		}
	}

	fields := make(map[string]string)
	if body.Price == nil {
		fields["price"] = helpPriceRequired
	}
	if body.StoreID == nil {
		fields["store_id"] = helpStoreIDRequired
	}
	if len(fields) > 0 {
		return itemPayload{}, fields
	}

	return itemPayload{Price: *body.Price, StoreID: *body.StoreID}, nil
}

// parseItemForm parses an item payload from a form-encoded body.
func parseItemForm(r *http.Request) (itemPayload, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return itemPayload{}, map[string]string{
			"price":    helpPriceRequired,
			"store_id": helpStoreIDRequired,
		}
	}

	fields := make(map[string]string)
	payload := itemPayload{}

	if raw := r.PostFormValue("price"); raw == "" {
		fields["price"] = helpPriceRequired
	} else if price, err := strconv.ParseFloat(raw, 64); err != nil {
		fields["price"] = helpPriceRequired
	} else {
		payload.Price = price
	}

	if raw := r.PostFormValue("store_id"); raw == "" {
		fields["store_id"] = helpStoreIDRequired
	} else if storeID, err := strconv.ParseInt(raw, 10, 64); err != nil {
		fields["store_id"] = helpStoreIDRequired
	} else {
		payload.StoreID = storeID
	}

	if len(fields) > 0 {
		return itemPayload{}, fields
	}

	return payload, nil
}

// parseCredentials reads the required username and password fields from
// a JSON or form-encoded body.
func parseCredentials(r *http.Request) (credentialsPayload, map[string]string) {
	payload := credentialsPayload{}

	if isJSONRequest(r) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			payload.Username = body.Username
			payload.Password = body.Password
		}
	} else if err := r.ParseForm(); err == nil {
		payload.Username = r.PostFormValue("username")
		payload.Password = r.PostFormValue("password")
	}

	fields := make(map[string]string)
	if payload.Username == "" {
		fields["username"] = helpFieldRequired
	}
	if payload.Password == "" {
		fields["password"] = helpFieldRequired
	}
	if len(fields) > 0 {
		return credentialsPayload{}, fields
	}

	return payload, nil
}
