package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/onsenkatsu/internal/domain"
)

func usageError(cmd Command) error {
	return fmt.Errorf("%w: onsen %s", domain.ErrInvalidInput, cmd.Usage())
}

// parsePoint reads a latitude/longitude pair in decimal degrees
func parsePoint(latArg, lngArg string) (domain.Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latArg), 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Point{}, fmt.Errorf("%w: latitude %q", domain.ErrInvalidInput, latArg)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngArg), 64)
	if err != nil || lng < -180 || lng > 180 {
		return domain.Point{}, fmt.Errorf("%w: longitude %q", domain.ErrInvalidInput, lngArg)
	}
	return domain.Point{Lat: lat, Lng: lng}, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func parseInt(name, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, name, arg)
	}
	return n, nil
}
