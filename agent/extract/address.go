package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"glambook/models"
)

// AddressResolver is an optional model-backed address puller. The
// orchestrator falls back to the local extractor when the resolver is
// absent, errors out, or times out.
type AddressResolver interface {
	ExtractAddress(ctx context.Context, message string, known map[string]string) (string, error)
}

// addressResolverTimeout bounds one resolver call.
const addressResolverTimeout = 4 * time.Second

var addressIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\baddress\s*(?:is|:|-)?\s+(.{8,120})`),
	regexp.MustCompile(`(?i)\bi\s+(?:live|stay)\s+(?:at|in)\s+(.{5,120})`),
	regexp.MustCompile(`(?i)\b(?:located|location)\s*(?:at|in|is|:)?\s+(.{5,120})`),
	regexp.MustCompile(`(?i)\bdeliver\s+to\s+(.{5,120})`),
	regexp.MustCompile(`(?i)\bvenue\s*(?:is|:|-)?\s+(.{5,120})`),
}

// streetPattern spots house-number + road style fragments.
var streetPattern = regexp.MustCompile(`(?i)\b\d{1,4}[a-z]?[,\s/-]+[a-zA-Z][a-zA-Z .]*(?:road|rd|street|st|lane|ln|colony|nagar|marg|chowk|sector|block|society|apartment|apt|flat|tower|galli|tole)\b[a-zA-Z0-9 ,.-]*`)

var trailingPincode = regexp.MustCompile(`[,\s-]*\b\d{4,6}\b\s*$`)

// knownLocations are city and state names across the service countries,
// lowercase, multi-word entries first. A bare locality reply ("Delhi")
// counts as an address.
var knownLocations = []string{
	// India
	"navi mumbai", "tamil nadu", "uttar pradesh", "madhya pradesh",
	"andhra pradesh", "west bengal", "mumbai", "delhi", "bangalore",
	"bengaluru", "hyderabad", "ahmedabad", "chennai", "kolkata", "surat",
	"pune", "jaipur", "lucknow", "kanpur", "nagpur", "indore", "thane",
	"bhopal", "patna", "vadodara", "ghaziabad", "ludhiana", "agra",
	"nashik", "faridabad", "meerut", "rajkot", "varanasi", "srinagar",
	"amritsar", "ranchi", "coimbatore", "gwalior", "vijayawada",
	"jodhpur", "madurai", "raipur", "kota", "chandigarh", "gurgaon",
	"noida", "maharashtra", "karnataka", "gujarat", "rajasthan",
	"punjab", "haryana", "kerala", "bihar", "telangana", "odisha",
	// Nepal
	"kathmandu", "pokhara", "lalitpur", "bhaktapur", "biratnagar",
	"birgunj", "dharan", "bharatpur", "hetauda", "janakpur", "butwal",
	// Pakistan
	"karachi", "lahore", "islamabad", "rawalpindi", "faisalabad",
	"multan", "peshawar", "quetta", "sialkot", "gujranwala",
	// Bangladesh
	"dhaka", "chittagong", "khulna", "rajshahi", "sylhet", "barisal",
	"rangpur", "comilla", "narayanganj",
	// UAE
	"abu dhabi", "ras al khaimah", "umm al quwain", "al ain", "dubai",
	"sharjah", "ajman", "fujairah",
}

// locationSuffixes flag address-shaped text with no house number.
var locationSuffixes = []string{
	"road", "street", "lane", "avenue", "colony", "nagar", "marg",
	"chowk", "sector", "block", "society", "apartment", "flat", "tower",
	"galli", "tole", "area", "locality", "layout", "enclave", "vihar",
	"village", "district",
}

// nonAddressToken disqualifies text still carrying an email or a long
// digit run (a phone the earlier extractors did not claim).
var nonAddressToken = regexp.MustCompile(`@|\d{7,}`)

// otherFieldWord spots leftover declaration fragments ("phone is",
// "email:") that survive bulk extraction; they are never part of a venue.
var otherFieldWord = regexp.MustCompile(`(?i)\b(?:name|e?-?mail|phone|mobile|whatsapp|contact|date|pincode|pin\s*code|zip|postal|country)\b`)

var numberWordPattern = regexp.MustCompile(`\b\d{1,4}[,\s]+[A-Za-z]`)

// AddressExtractor pulls street addresses from indicator phrases and
// street-shaped fragments.
type AddressExtractor struct{}

func (AddressExtractor) Field() string { return models.FieldAddress }

func (e AddressExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)

	for _, re := range addressIndicators {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if addr, ok := tidyAddress(m[1]); ok {
			return models.Candidate{
				Field:      models.FieldAddress,
				Value:      addr,
				Confidence: models.ConfidenceHigh,
				Method:     "indicator",
				Raw:        m[0],
			}, true
		}
	}

	if m := streetPattern.FindString(message); m != "" {
		if addr, ok := tidyAddress(m); ok {
			return models.Candidate{
				Field:      models.FieldAddress,
				Value:      addr,
				Confidence: models.ConfidenceMedium,
				Method:     "street_pattern",
				Raw:        m,
			}, true
		}
	}

	if addr, raw, ok := locationAddress(message); ok {
		return models.Candidate{
			Field:      models.FieldAddress,
			Value:      addr,
			Confidence: models.ConfidenceMedium,
			Method:     "location",
			Raw:        raw,
		}, true
	}

	// Last resort so address collection never silently yields nothing:
	// anything address-shaped (commas, a location suffix, number + word)
	// is taken at low confidence.
	if addr, ok := plausibleAddress(message); ok {
		return models.Candidate{
			Field:      models.FieldAddress,
			Value:      addr,
			Confidence: models.ConfidenceLow,
			Method:     "plausible",
			Raw:        message,
		}, true
	}

	return models.Candidate{}, false
}

// locationAddress accepts text anchored on a known city or state name,
// pulling in the comma segment before it and a short trailing word.
func locationAddress(message string) (string, string, bool) {
	lower := strings.ToLower(message)
	for _, loc := range knownLocations {
		idx := strings.Index(lower, loc)
		if idx < 0 {
			continue
		}
		before := strings.TrimSpace(message[:idx])
		after := strings.Trim(message[idx+len(loc):], " ,.;")

		var parts []string
		if len(before) > 5 && !nonAddressToken.MatchString(before) {
			segs := strings.Split(before, ",")
			for i := len(segs) - 1; i >= 0; i-- {
				seg := strings.Trim(segs[i], " ,.;")
				if seg == "" {
					continue
				}
				if digitsOnly(seg) != seg && !otherFieldWord.MatchString(seg) {
					parts = append(parts, seg)
				}
				break
			}
		}
		parts = append(parts, titleCase(loc))
		if after != "" && !nonAddressToken.MatchString(after) && !otherFieldWord.MatchString(after) {
			if words := strings.Fields(after); len(words) <= 3 && digitsOnly(words[0]) != words[0] {
				parts = append(parts, titleCase(words[0]))
			}
		}
		raw := message[idx : idx+len(loc)]
		return strings.Join(parts, ", "), raw, true
	}
	return "", "", false
}

// conversationalOpeners veto the plausible fallback: "yes, that works"
// is an acknowledgement, not a venue.
var conversationalOpeners = map[string]bool{
	"yes": true, "no": true, "ok": true, "okay": true, "sure": true,
	"thanks": true, "thank": true, "hmm": true, "maybe": true,
	"sorry": true, "please": true, "hello": true, "hi": true,
}

// plausibleAddress is the accept-almost-anything fallback used when no
// structured pattern fired.
func plausibleAddress(message string) (string, bool) {
	s := strings.TrimSpace(message)
	if len(s) < 5 || nonAddressToken.MatchString(s) || otherFieldWord.MatchString(s) {
		return "", false
	}
	if words := strings.Fields(strings.ToLower(s)); len(words) > 0 &&
		conversationalOpeners[strings.Trim(words[0], ",.!?")] {
		return "", false
	}
	lower := strings.ToLower(s)
	hasSuffix := false
	for _, w := range locationSuffixes {
		if strings.Contains(lower, w) {
			hasSuffix = true
			break
		}
	}
	multiWordComma := strings.Contains(s, ",") && len(strings.Fields(s)) >= 2
	if !hasSuffix && !multiWordComma && !numberWordPattern.MatchString(s) {
		return "", false
	}
	return tidyAddress(s)
}

// ExtractWithResolver tries the model-backed resolver first, then the
// local patterns.
func (e AddressExtractor) ExtractWithResolver(ctx context.Context, resolver AddressResolver, message string, known map[string]string) (models.Candidate, bool) {
	if resolver != nil {
		rctx, cancel := context.WithTimeout(ctx, addressResolverTimeout)
		defer cancel()
		if addr, err := resolver.ExtractAddress(rctx, message, known); err == nil {
			if tidied, ok := tidyAddress(addr); ok {
				return models.Candidate{
					Field:      models.FieldAddress,
					Value:      tidied,
					Confidence: models.ConfidenceHigh,
					Method:     "resolver",
					Raw:        tidied,
				}, true
			}
		}
	}
	return e.Extract(message, nil)
}

// tidyAddress strips a trailing pincode and rejects fragments too short to
// be a usable address.
func tidyAddress(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), ",.;")
	s = trailingPincode.ReplaceAllString(s, "")
	s = strings.Trim(strings.TrimSpace(s), ",.;")
	if len(s) < 5 || digitsOnly(s) == s {
		return "", false
	}
	return s, true
}
