package services

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback payloads are the encoded identifiers carried by inline buttons.
// The format is prefix:field:field, the last field taking the remainder so
// addresses and volume labels may contain colons.
const (
	cbPlaceOrder       = "place_order"
	cbBackToMainMenu   = "back_to_main_menu"
	cbConfirmOrder     = "confirm_order"
	cbConfirmBroadcast = "confirm_broadcast"
	cbCancelBroadcast  = "cancel_broadcast"
	cbShowMenu         = "show_menu"
	cbWorkingHours     = "working_hours"
	cbLoyaltyProgram   = "loyalty_program"

	cbPrefixLocation = "location"
	cbPrefixProduct  = "product"
	cbPrefixVolume   = "volume"
	cbPrefixOption   = "option"
	cbPrefixQuantity = "quantity"
	cbPrefixDone     = "done"
)

func callbackPrefix(data string) string {
	if i := strings.IndexByte(data, ':'); i >= 0 {
		return data[:i]
	}
	return data
}

func locationCallback(adminID int64, address string) string {
	return fmt.Sprintf("%s:%d:%s", cbPrefixLocation, adminID, address)
}

func parseLocationCallback(data string) (adminID int64, address string, err error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return 0, "", fmt.Errorf("malformed location callback %q", data)
	}
	adminID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed location callback %q", data)
	}
	return adminID, parts[2], nil
}

func productCallback(id int) string {
	return fmt.Sprintf("%s:%d", cbPrefixProduct, id)
}

func parseProductCallback(data string) (int, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed product callback %q", data)
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed product callback %q", data)
	}
	return id, nil
}

func volumeCallback(productID int, label string) string {
	return fmt.Sprintf("%s:%d:%s", cbPrefixVolume, productID, label)
}

func parseVolumeCallback(data string) (productID int, label string, err error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return 0, "", fmt.Errorf("malformed volume callback %q", data)
	}
	productID, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", fmt.Errorf("malformed volume callback %q", data)
	}
	return productID, parts[2], nil
}

// Option callbacks use short category tokens; item id 0 means "skip".
const (
	optionTokenMilk  = "milk"
	optionTokenSyrup = "syrup"
)

func optionCallback(token string, id int) string {
	return fmt.Sprintf("%s:%s:%d", cbPrefixOption, token, id)
}

func parseOptionCallback(data string) (token string, id int, err error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return "", 0, fmt.Errorf("malformed option callback %q", data)
	}
	id, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, fmt.Errorf("malformed option callback %q", data)
	}
	return parts[1], id, nil
}

func quantityCallback(count int) string {
	return fmt.Sprintf("%s:%d", cbPrefixQuantity, count)
}

func parseQuantityCallback(data string) (int, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed quantity callback %q", data)
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed quantity callback %q", data)
	}
	return count, nil
}

func doneCallback(userID int64, orderID uint64) string {
	return fmt.Sprintf("%s:%d:%d", cbPrefixDone, userID, orderID)
}

func parseDoneCallback(data string) (userID int64, orderID uint64, err error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("malformed done callback %q", data)
	}
	userID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed done callback %q", data)
	}
	orderID, err = strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed done callback %q", data)
	}
	return userID, orderID, nil
}
