package service

import (
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	jobCodeMin = 1_000_000
	jobCodeMax = 9_999_999
)

var jobCodePattern = regexp.MustCompile(`^\d{7}$`)

// GenerateJobCode draws a uniformly random seven digit code. Uniqueness
// against existing rows is not checked.
func GenerateJobCode() string {
	return strconv.Itoa(jobCodeMin + rand.IntN(jobCodeMax-jobCodeMin+1))
}

// ValidJobCode reports whether code is exactly seven ASCII digits.
func ValidJobCode(code string) bool {
	return jobCodePattern.MatchString(code)
}

// ParseTags splits a comma separated list, trimming entries and dropping
// empty ones. The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// UploadKey builds "<unix millis>_<6 random base36 chars>.<ext>" from the
// original file name. Names without an extension get no suffix.
func UploadKey(originalName string, now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	key := strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix)
	if ext := cleanExt(originalName); ext != "" {
		key += "." + ext
	}
	return key
}

// cleanExt returns the lower-cased extension of name restricted to ASCII
// letters and digits.
func cleanExt(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(name)), "."))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
}
