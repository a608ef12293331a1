package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-service-booking/internal/model"
    "github.com/iliyamo/car-service-booking/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// currentRole returns the role claim injected by the JWT middleware.
func currentRole(c echo.Context) string {
    if r, ok := c.Get("role").(string); ok {
        return r
    }
    return ""
}

// bookingResp is the wire representation of a booking, with the field
// names the web clients render.
type bookingResp struct {
    ID            uint64 `json:"id"`
    OwnerUsername string `json:"ownerUsername"`
    MobileNumber  string `json:"mobileNumber"`
    ServiceType   string `json:"serviceType"`
    VehicleType   string `json:"vehicleType"`
    VehicleModel  string `json:"vehicleModel"`
    Date          string `json:"date"`
    Time          string `json:"time"`
    Description   string `json:"description,omitempty"`
    Status        string `json:"status"`
    CreatedAt     string `json:"createdAt"`
}

func toBookingResp(b model.Booking) bookingResp {
    return bookingResp{
        ID:            b.ID,
        OwnerUsername: b.OwnerUsername,
        MobileNumber:  b.MobileNumber,
        ServiceType:   b.ServiceType,
        VehicleType:   b.VehicleType,
        VehicleModel:  b.VehicleModel,
        Date:          b.Date.Format(model.DateLayout),
        Time:          b.TimeSlot,
        Description:   b.Description,
        Status:        string(b.Status),
        CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
    }
}

func toBookingResps(bs []model.Booking) []bookingResp {
    out := make([]bookingResp, 0, len(bs))
    for _, b := range bs {
        out = append(out, toBookingResp(b))
    }
    return out
}

// statusFilterFrom parses the optional ?status= query parameter shared
// by the listing endpoints. The second return value is false when the
// parameter is present but names no known status.
func statusFilterFrom(c echo.Context) (*model.Status, bool) {
    raw := c.QueryParam("status")
    if raw == "" {
        return nil, true
    }
    st, ok := model.ParseStatus(raw)
    if !ok {
        return nil, false
    }
    return &st, true
}

// transitionError translates the repository's transition sentinels into
// HTTP responses. Unknown errors become a generic 500 so infrastructure
// failures stay distinct from the domain taxonomy.
func transitionError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrInvalidTransition):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status transition"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
}
