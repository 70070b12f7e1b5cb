package config

// ServiceInfo describes one bookable service and its packages.
type ServiceInfo struct {
	Description string
	Packages    []PackageInfo
}

// PackageInfo is a named package with a display price.
type PackageInfo struct {
	Name  string
	Price string
}

// Services is the bookable catalog, in menu order.
var Services = []struct {
	Name string
	Info ServiceInfo
}{
	{
		Name: "Bridal Makeup Services",
		Info: ServiceInfo{
			Description: "Premium bridal makeup, customized for weddings",
			Packages: []PackageInfo{
				{Name: "Signature Bridal Makeup", Price: "₹99,999"},
				{Name: "Luxury Bridal Makeup (HD / Brush)", Price: "₹79,999"},
				{Name: "Reception / Engagement / Cocktail Makeup", Price: "₹59,999"},
			},
		},
	},
	{
		Name: "Party Makeup Services",
		Info: ServiceInfo{
			Description: "Makeup for parties, receptions, and special occasions",
			Packages: []PackageInfo{
				{Name: "Party Makeup by Lead Artist", Price: "₹19,999"},
				{Name: "Party Makeup by Senior Artist", Price: "₹6,999"},
			},
		},
	},
	{
		Name: "Engagement & Pre-Wedding Makeup",
		Info: ServiceInfo{
			Description: "Makeup for engagement and pre-wedding functions",
			Packages: []PackageInfo{
				{Name: "Engagement Makeup by Lead Artist", Price: "₹59,999"},
				{Name: "Pre-Wedding Makeup by Senior Artist", Price: "₹19,999"},
			},
		},
	},
	{
		Name: "Henna (Mehendi) Services",
		Info: ServiceInfo{
			Description: "Henna services for bridal and special occasions",
			Packages: []PackageInfo{
				{Name: "Henna by Lead Artist", Price: "₹49,999"},
				{Name: "Henna by Senior Artist", Price: "₹19,999"},
			},
		},
	},
}

// ServiceByName returns the catalog entry for a service name, if present.
func ServiceByName(name string) (ServiceInfo, bool) {
	for _, s := range Services {
		if s.Name == name {
			return s.Info, true
		}
	}
	return ServiceInfo{}, false
}

// Countries lists the serviceable countries in menu order.
var Countries = []string{"India", "Nepal", "Pakistan", "Bangladesh", "Dubai"}

// CountryCodes maps a serviceable country to its phone dialing code.
var CountryCodes = map[string]string{
	"India":      "+91",
	"Nepal":      "+977",
	"Pakistan":   "+92",
	"Bangladesh": "+880",
	"Dubai":      "+971",
}

// CountryPincodeLengths maps a country to its postal code digit count.
var CountryPincodeLengths = map[string]int{
	"India":      6,
	"Nepal":      5,
	"Pakistan":   5,
	"Bangladesh": 4,
	"Dubai":      5,
}
