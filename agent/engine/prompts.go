package engine

import (
	"fmt"
	"strings"

	"glambook/config"
	"glambook/models"
)

// pick returns the variant for lang, falling back to English.
func pick(variants map[string]string, lang string) string {
	if v, ok := variants[lang]; ok {
		return v
	}
	return variants["en"]
}

// Greeting opens the conversation.
func Greeting(lang string) string {
	return pick(map[string]string{
		"en": "👋 Hi! I can help you book makeup and henna services, or answer questions about packages and prices. Would you like to make a booking?",
		"hi": "👋 नमस्ते! मैं मेकअप और मेहंदी सेवाओं की बुकिंग में मदद कर सकता हूँ। क्या आप बुकिंग करना चाहेंगे?",
		"ne": "👋 नमस्ते! म मेकअप र मेहन्दी सेवाहरूको बुकिङमा मद्दत गर्न सक्छु। के तपाईं बुकिङ गर्न चाहनुहुन्छ?",
		"mr": "👋 नमस्कार! मी मेकअप आणि मेंदी सेवांच्या बुकिंगमध्ये मदत करू शकतो. तुम्हाला बुकिंग करायची आहे का?",
	}, lang)
}

// ServiceMenu lists the bookable services with numbers.
func ServiceMenu(lang string) string {
	var b strings.Builder
	b.WriteString(pick(map[string]string{
		"en": "💄 Here are our services. Reply with a number or name:\n",
		"hi": "💄 हमारी सेवाएँ ये हैं। नंबर या नाम से जवाब दें:\n",
		"ne": "💄 हाम्रा सेवाहरू यी हुन्। नम्बर वा नामले जवाफ दिनुहोस्:\n",
		"mr": "💄 आमच्या सेवा या आहेत. क्रमांक किंवा नावाने उत्तर द्या:\n",
	}, lang))
	for i, s := range config.Services {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, s.Name, s.Info.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PackageMenu lists the packages of one service with prices.
func PackageMenu(service, lang string) string {
	info, ok := config.ServiceByName(service)
	if !ok {
		return ServiceMenu(lang)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s ✨ %s:\n", pick(map[string]string{
		"en": "Great choice!", "hi": "बहुत बढ़िया!", "ne": "राम्रो छनोट!", "mr": "उत्तम निवड!",
	}, lang), service)
	for i, p := range info.Packages {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, p.Name, p.Price)
	}
	b.WriteString(pick(map[string]string{
		"en": "Which package would you like?",
		"hi": "आप कौन सा पैकेज लेना चाहेंगे?",
		"ne": "तपाईं कुन प्याकेज लिन चाहनुहुन्छ?",
		"mr": "तुम्हाला कोणते पॅकेज हवे आहे?",
	}, lang))
	return b.String()
}

// InfoBlurb answers a general info request from the catalog.
func InfoBlurb(lang string) string {
	var b strings.Builder
	b.WriteString(pick(map[string]string{
		"en": "ℹ️ Here's what we offer:\n",
		"hi": "ℹ️ हम ये सेवाएँ देते हैं:\n",
		"ne": "ℹ️ हामी यी सेवाहरू दिन्छौं:\n",
		"mr": "ℹ️ आम्ही या सेवा देतो:\n",
	}, lang))
	for _, s := range config.Services {
		fmt.Fprintf(&b, "• %s (%s)\n", s.Name, s.Info.Description)
		for _, p := range s.Info.Packages {
			fmt.Fprintf(&b, "   - %s: %s\n", p.Name, p.Price)
		}
	}
	b.WriteString(pick(map[string]string{
		"en": "Say \"book\" whenever you're ready!",
		"hi": "जब तैयार हों तो \"book\" कहें!",
		"ne": "तयार भएपछि \"book\" भन्नुहोस्!",
		"mr": "तयार असाल तेव्हा \"book\" म्हणा!",
	}, lang))
	return b.String()
}

// fieldQuestions are the pointed per-field prompts.
var fieldQuestions = map[string]map[string]string{
	models.FieldName: {
		"en": "📝 What's your full name?",
		"hi": "📝 आपका पूरा नाम क्या है?",
		"ne": "📝 तपाईंको पूरा नाम के हो?",
		"mr": "📝 तुमचे पूर्ण नाव काय आहे?",
	},
	models.FieldEmail: {
		"en": "📧 What's your email address?",
		"hi": "📧 आपका ईमेल पता क्या है?",
		"ne": "📧 तपाईंको इमेल ठेगाना के हो?",
		"mr": "📧 तुमचा ईमेल पत्ता काय आहे?",
	},
	models.FieldPhone: {
		"en": "📱 What's your phone number (with country code, e.g. +91...)?",
		"hi": "📱 आपका फोन नंबर क्या है (कंट्री कोड के साथ, जैसे +91...)?",
		"ne": "📱 तपाईंको फोन नम्बर के हो (देश कोड सहित, जस्तै +977...)?",
		"mr": "📱 तुमचा फोन नंबर काय आहे (कंट्री कोडसह, उदा. +91...)?",
	},
	models.FieldServiceCountry: {
		"en": "🌍 Which country is the service for? (India, Nepal, Pakistan, Bangladesh, Dubai)",
		"hi": "🌍 सेवा किस देश के लिए है? (India, Nepal, Pakistan, Bangladesh, Dubai)",
		"ne": "🌍 सेवा कुन देशको लागि हो? (India, Nepal, Pakistan, Bangladesh, Dubai)",
		"mr": "🌍 सेवा कोणत्या देशासाठी आहे? (India, Nepal, Pakistan, Bangladesh, Dubai)",
	},
	models.FieldDate: {
		"en": "📅 What date would you like? (e.g. 15 March 2026)",
		"hi": "📅 आपको कौन सी तारीख चाहिए? (जैसे 15 March 2026)",
		"ne": "📅 तपाईंलाई कुन मिति चाहिन्छ? (जस्तै 15 March 2026)",
		"mr": "📅 तुम्हाला कोणती तारीख हवी आहे? (उदा. 15 March 2026)",
	},
	models.FieldAddress: {
		"en": "🏠 What's the venue address?",
		"hi": "🏠 स्थान का पता क्या है?",
		"ne": "🏠 स्थलको ठेगाना के हो?",
		"mr": "🏠 ठिकाणाचा पत्ता काय आहे?",
	},
	models.FieldPincode: {
		"en": "📮 What's the postal code / pincode?",
		"hi": "📮 पिनकोड क्या है?",
		"ne": "📮 पोस्टल कोड के हो?",
		"mr": "📮 पिनकोड काय आहे?",
	},
}

// FieldQuestion returns the pointed prompt for one field.
func FieldQuestion(field, lang string) string {
	if qs, ok := fieldQuestions[field]; ok {
		return pick(qs, lang)
	}
	return pick(map[string]string{
		"en": "Could you share your " + models.FieldLabels[field] + "?",
	}, lang)
}

// CollectedSummary acknowledges what is known and asks for what is not.
func CollectedSummary(intent *models.BookingIntent, missing []string, lang string) string {
	var b strings.Builder
	collected := intent.Collected()
	if len(collected) > 0 {
		b.WriteString(pick(map[string]string{
			"en": "✅ Got so far:\n", "hi": "✅ अब तक मिला:\n",
			"ne": "✅ अहिलेसम्म प्राप्त:\n", "mr": "✅ आतापर्यंत मिळाले:\n",
		}, lang))
		for _, f := range models.RequiredFields {
			if v, ok := collected[f]; ok {
				display := v
				if f == models.FieldPhone && intent.PhoneDetail != nil {
					display = intent.PhoneDetail.Formatted
				}
				fmt.Fprintf(&b, "• %s: %s\n", models.FieldLabels[f], display)
			}
		}
	}
	if len(missing) > 0 {
		b.WriteString(pick(map[string]string{
			"en": "Still needed: ", "hi": "अभी चाहिए: ",
			"ne": "अझै चाहिन्छ: ", "mr": "अजून हवे: ",
		}, lang))
		b.WriteString(strings.Join(missing, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ConfirmationSummary shows the full booking and asks for a yes.
func ConfirmationSummary(intent *models.BookingIntent, lang string) string {
	var b strings.Builder
	b.WriteString(pick(map[string]string{
		"en": "🎉 Please confirm your booking:\n",
		"hi": "🎉 कृपया अपनी बुकिंग की पुष्टि करें:\n",
		"ne": "🎉 कृपया आफ्नो बुकिङ पुष्टि गर्नुहोस्:\n",
		"mr": "🎉 कृपया तुमच्या बुकिंगची पुष्टी करा:\n",
	}, lang))
	phone := intent.Phone
	if intent.PhoneDetail != nil {
		phone = intent.PhoneDetail.Formatted
	}
	fmt.Fprintf(&b, "💄 %s — %s\n", intent.Service, intent.Package)
	fmt.Fprintf(&b, "👤 %s\n📧 %s\n📱 %s\n🌍 %s\n📅 %s\n🏠 %s, %s\n",
		intent.Name, intent.Email, phone, intent.ServiceCountry,
		intent.Date, intent.Address, intent.Pincode)
	b.WriteString(pick(map[string]string{
		"en": "Is everything correct? (yes / change <field>)",
		"hi": "क्या सब सही है? (yes / change <field>)",
		"ne": "के सबै सही छ? (yes / change <field>)",
		"mr": "सर्व बरोबर आहे का? (yes / change <field>)",
	}, lang))
	return b.String()
}

// OTPSentPrompt tells the user a code is on its way.
func OTPSentPrompt(phone, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "🔐 I've sent a 6-digit verification code to %s. Please enter it to confirm your booking.",
		"hi": "🔐 मैंने %s पर 6 अंकों का कोड भेजा है। बुकिंग की पुष्टि के लिए उसे दर्ज करें।",
		"ne": "🔐 मैले %s मा ६ अंकको कोड पठाएको छु। बुकिङ पुष्टि गर्न त्यो हाल्नुहोस्।",
		"mr": "🔐 मी %s वर 6 अंकी कोड पाठवला आहे. बुकिंगची पुष्टी करण्यासाठी तो टाका.",
	}, lang), phone)
}

// OTPInvalidPrompt is shown on a wrong code with attempts remaining.
func OTPInvalidPrompt(remaining int, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "❌ That code doesn't match. %d attempt(s) left. Please try again or say \"resend\".",
		"hi": "❌ कोड मेल नहीं खाता। %d प्रयास बाकी हैं। फिर से कोशिश करें या \"resend\" कहें।",
		"ne": "❌ कोड मिलेन। %d प्रयास बाँकी छ। फेरि प्रयास गर्नुहोस् वा \"resend\" भन्नुहोस्।",
		"mr": "❌ कोड जुळत नाही. %d प्रयत्न शिल्लक आहेत. पुन्हा प्रयत्न करा किंवा \"resend\" म्हणा.",
	}, lang), remaining)
}

// OTPExpired asks for a fresh code after the old one lapsed.
func OTPExpiredPrompt(lang string) string {
	return pick(map[string]string{
		"en": "⏰ That code has expired. Say \"resend\" and I'll send you a fresh one.",
		"hi": "⏰ वह कोड समाप्त हो गया है। \"resend\" कहें, मैं नया कोड भेज दूँगा।",
		"ne": "⏰ त्यो कोडको म्याद सकियो। \"resend\" भन्नुहोस्, म नयाँ कोड पठाउँछु।",
		"mr": "⏰ तो कोड कालबाह्य झाला आहे. \"resend\" म्हणा, मी नवीन कोड पाठवतो.",
	}, lang)
}

// OTPExhausted closes verification after too many wrong codes.
func OTPExhaustedPrompt(lang string) string {
	return pick(map[string]string{
		"en": "🚫 Too many incorrect codes, so I've cancelled this booking for safety. Say \"book\" whenever you'd like to start again.",
		"hi": "🚫 बहुत बार गलत कोड डाला गया, इसलिए बुकिंग रद्द कर दी गई है। फिर से शुरू करने के लिए \"book\" कहें।",
		"ne": "🚫 धेरै पटक गलत कोड हालियो, त्यसैले बुकिङ रद्द गरियो। फेरि सुरु गर्न \"book\" भन्नुहोस्।",
		"mr": "🚫 खूप वेळा चुकीचा कोड टाकला गेला, म्हणून बुकिंग रद्द केली आहे. पुन्हा सुरू करण्यासाठी \"book\" म्हणा.",
	}, lang)
}

// CompletionMessage closes a verified booking.
func CompletionMessage(bookingID, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "🎊 Your booking is confirmed! Booking ID: %s. We'll be in touch before your appointment. Thank you!",
		"hi": "🎊 आपकी बुकिंग पक्की हो गई! बुकिंग ID: %s। धन्यवाद!",
		"ne": "🎊 तपाईंको बुकिङ पक्का भयो! बुकिङ ID: %s। धन्यवाद!",
		"mr": "🎊 तुमची बुकिंग निश्चित झाली! बुकिंग ID: %s. धन्यवाद!",
	}, lang), bookingID)
}

// NotUnderstood nudges without blaming.
func NotUnderstood(lang string) string {
	return pick(map[string]string{
		"en": "🤔 Sorry, I didn't catch that. You can share details like your name, phone, or preferred date — or ask me a question.",
		"hi": "🤔 माफ़ कीजिए, समझ नहीं आया। आप नाम, फोन या तारीख जैसी जानकारी दे सकते हैं।",
		"ne": "🤔 माफ गर्नुहोस्, बुझिनँ। तपाईं नाम, फोन वा मिति जस्ता विवरण दिन सक्नुहुन्छ।",
		"mr": "🤔 माफ करा, समजले नाही. तुम्ही नाव, फोन किंवा तारीख यासारखी माहिती देऊ शकता.",
	}, lang)
}

// Cancellation acknowledges an abandoned booking.
func Cancellation(lang string) string {
	return pick(map[string]string{
		"en": "✅ Booking cancelled. How else can I help?",
		"hi": "✅ बुकिंग रद्द कर दी गई है। मैं और कैसे मदद कर सकता हूँ?",
		"ne": "✅ बुकिङ रद्द गरियो। म अरु कसरी मद्दत गर्न सक्छु?",
		"mr": "✅ बुकिंग रद्द केली आहे. मी आणखी कशी मदत करू शकतो?",
	}, lang)
}

// Deescalation responds to visible frustration.
func Deescalation(lang string) string {
	return pick(map[string]string{
		"en": "😔 I'm sorry this has been frustrating. Let's take it one step at a time — you can also type \"restart\" to begin fresh.",
		"hi": "😔 असुविधा के लिए खेद है। चलिए एक-एक करके करते हैं — आप \"restart\" भी लिख सकते हैं।",
		"ne": "😔 असुविधाको लागि माफी चाहन्छु। एक-एक गरेर अघि बढौं — \"restart\" पनि लेख्न सक्नुहुन्छ।",
		"mr": "😔 गैरसोयीबद्दल क्षमस्व. एक-एक करून पुढे जाऊ — तुम्ही \"restart\" देखील लिहू शकता.",
	}, lang)
}

// Refocus gently steers an off-track conversation back to the booking.
func Refocus(missing []string, lang string) string {
	base := pick(map[string]string{
		"en": "😊 Happy to chat! To finish your booking I still need: ",
		"hi": "😊 बात करके अच्छा लगा! बुकिंग पूरी करने के लिए चाहिए: ",
		"ne": "😊 कुरा गर्न पाउँदा खुसी! बुकिङ पूरा गर्न चाहिन्छ: ",
		"mr": "😊 बोलून छान वाटले! बुकिंग पूर्ण करण्यासाठी हवे: ",
	}, lang)
	return base + strings.Join(missing, ", ")
}

// Goodbye closes the conversation politely.
func Goodbye(lang string) string {
	return pick(map[string]string{
		"en": "👋 Thanks for stopping by! Come back any time you'd like to book.",
		"hi": "👋 आने के लिए धन्यवाद! जब भी बुकिंग करनी हो, वापस आइए।",
		"ne": "👋 आउनुभएकोमा धन्यवाद! बुकिङ गर्न मन लागे फेरि आउनुहोस्।",
		"mr": "👋 भेट दिल्याबद्दल धन्यवाद! बुकिंग करायची असेल तेव्हा परत या.",
	}, lang)
}

// Apology covers unexpected internal failures.
func Apology(lang string) string {
	return pick(map[string]string{
		"en": "😓 Something went wrong on my side. Let's start over — would you like to make a booking?",
		"hi": "😓 मेरी तरफ से कुछ गड़बड़ हो गई। चलिए फिर से शुरू करते हैं — क्या आप बुकिंग करना चाहेंगे?",
		"ne": "😓 मेरो तर्फबाट केही गडबड भयो। फेरि सुरु गरौं — के तपाईं बुकिङ गर्न चाहनुहुन्छ?",
		"mr": "😓 माझ्याकडून काहीतरी चूक झाली. पुन्हा सुरुवात करू — तुम्हाला बुकिंग करायची आहे का?",
	}, lang)
}

// DetailsIntro opens the collection phase after a package is picked.
func DetailsIntro(lang string) string {
	return pick(map[string]string{
		"en": "📋 Almost there! Please share your details — you can send them all at once:\nname, email, phone (with country code), country, preferred date, address, pincode",
		"hi": "📋 बस थोड़ा और! कृपया अपनी जानकारी साझा करें — सब एक साथ भेज सकते हैं:\nनाम, ईमेल, फोन (कंट्री कोड सहित), देश, तारीख, पता, पिनकोड",
		"ne": "📋 लगभग भयो! कृपया आफ्नो विवरण पठाउनुहोस् — सबै एकैपटक पठाउन सक्नुहुन्छ:\nनाम, इमेल, फोन (देश कोड सहित), देश, मिति, ठेगाना, पिनकोड",
		"mr": "📋 जवळजवळ झाले! कृपया तुमची माहिती पाठवा — सर्व एकत्र पाठवू शकता:\nनाव, ईमेल, फोन (कंट्री कोडसह), देश, तारीख, पत्ता, पिनकोड",
	}, lang)
}

// CompletedReminder answers messages after the booking is done.
func CompletedReminder(bookingID, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "✅ Your booking (%s) is already confirmed. Say \"new booking\" to start another one.",
		"hi": "✅ आपकी बुकिंग (%s) पहले से पक्की है। नई बुकिंग के लिए \"new booking\" कहें।",
		"ne": "✅ तपाईंको बुकिङ (%s) पहिले नै पक्का छ। नयाँ बुकिङको लागि \"new booking\" भन्नुहोस्।",
		"mr": "✅ तुमची बुकिंग (%s) आधीच निश्चित आहे. नवीन बुकिंगसाठी \"new booking\" म्हणा.",
	}, lang), bookingID)
}

// EmailSelectionPrompt asks the user to pick between candidate addresses.
func EmailSelectionPrompt(options []string, lang string) string {
	var b strings.Builder
	b.WriteString(pick(map[string]string{
		"en": "📧 I found more than one email address. Which one should I use?\n",
		"hi": "📧 मुझे एक से ज़्यादा ईमेल मिले। कौन सा इस्तेमाल करूँ?\n",
		"ne": "📧 मैले एकभन्दा बढी इमेल भेटेँ। कुन प्रयोग गरूँ?\n",
		"mr": "📧 मला एकाहून अधिक ईमेल सापडले. कोणता वापरू?\n",
	}, lang))
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	b.WriteString(pick(map[string]string{
		"en": "Reply with a number, or type a different address.",
		"hi": "नंबर से जवाब दें, या दूसरा पता लिखें।",
		"ne": "नम्बरले जवाफ दिनुहोस्, वा अर्को ठेगाना लेख्नुहोस्।",
		"mr": "क्रमांकाने उत्तर द्या, किंवा वेगळा पत्ता लिहा.",
	}, lang))
	return b.String()
}

// YearQuestion asks for the missing year of a partial date.
func YearQuestion(original, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "📅 You said \"%s\" but didn't mention the year. Which year? (e.g. 2026)",
		"hi": "📅 आपने \"%s\" कहा लेकिन साल नहीं बताया। कौन सा साल? (जैसे 2026)",
		"ne": "📅 तपाईंले \"%s\" भन्नुभयो तर वर्ष भन्नुभएन। कुन वर्ष? (जस्तै 2026)",
		"mr": "📅 तुम्ही \"%s\" म्हणालात पण वर्ष सांगितले नाही. कोणते वर्ष? (उदा. 2026)",
	}, lang), original)
}

// ChangeValuePrompt asks for the replacement value of one field.
func ChangeValuePrompt(field, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "✏️ Sure — what should the new %s be?",
		"hi": "✏️ ज़रूर — नया %s क्या होना चाहिए?",
		"ne": "✏️ हुन्छ — नयाँ %s के हुनुपर्छ?",
		"mr": "✏️ नक्की — नवीन %s काय असावे?",
	}, lang), models.FieldLabels[field])
}

// ChangeMenu lists the changeable fields by number.
func ChangeMenu(intent *models.BookingIntent, lang string) string {
	var b strings.Builder
	b.WriteString(pick(map[string]string{
		"en": "✏️ What would you like to change?\n",
		"hi": "✏️ आप क्या बदलना चाहेंगे?\n",
		"ne": "✏️ तपाईं के परिवर्तन गर्न चाहनुहुन्छ?\n",
		"mr": "✏️ तुम्हाला काय बदलायचे आहे?\n",
	}, lang))
	for i, f := range models.RequiredFields {
		v := intent.Get(f)
		if v == "" {
			v = "—"
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, models.FieldLabels[f], v)
	}
	b.WriteString(pick(map[string]string{
		"en": "Reply with a number or the field name.",
		"hi": "नंबर या फ़ील्ड के नाम से जवाब दें।",
		"ne": "नम्बर वा फिल्डको नामले जवाफ दिनुहोस्।",
		"mr": "क्रमांक किंवा फील्डच्या नावाने उत्तर द्या.",
	}, lang))
	return b.String()
}

// ChangeFailed gives up on a change after repeated invalid values.
func ChangeFailed(field, lang string) string {
	return fmt.Sprintf(pick(map[string]string{
		"en": "⚠️ I couldn't apply that %s. Let's keep the current value for now — you can try changing it again later.",
		"hi": "⚠️ मैं वह %s लागू नहीं कर सका। अभी मौजूदा मान रखते हैं — बाद में फिर कोशिश करें।",
		"ne": "⚠️ म त्यो %s लागू गर्न सकिनँ। अहिलेलाई पुरानै राखौं — पछि फेरि प्रयास गर्नुहोस्।",
		"mr": "⚠️ मी तो %s लागू करू शकलो नाही. सध्या आहे तेच ठेवू — नंतर पुन्हा प्रयत्न करा.",
	}, lang), models.FieldLabels[field])
}
