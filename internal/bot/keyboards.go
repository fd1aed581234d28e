package bot

// Reply keyboard button labels. Handlers match incoming text against these.
const (
	btnSearch  = "🔍 Поиск документации"
	btnDocs    = "📚 База документации"
	btnFAQ     = "❓ Частые вопросы"
	btnCourses = "🎓 Обучение"
	btnSupport = "🧑‍💻 Связаться с поддержкой"
)

// Callback data values for inline buttons.
const (
	cbHelpfulYes  = "info_helpful_yes"
	cbHelpfulNo   = "info_helpful_no"
	cbNewSearch   = "new_search"
	cbSupportForm = "support_form"
	cbAskAI       = "ask_ai"
	cbFAQPrefix   = "faq:"
)

// publicDocsURL is the browsable root of the shared documentation folder.
const publicDocsURL = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw"

func mainKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: btnSearch}},
			{{Text: btnDocs}, {Text: btnFAQ}},
			{{Text: btnCourses}, {Text: btnSupport}},
		},
		ResizeKeyboard: true,
	}
}

// docsKeyboard lists the brand folders of the documentation tree.
func docsKeyboard() *InlineKeyboardMarkup {
	brands := []struct {
		label  string
		folder string
	}{
		{"iOT Systems", "01.%20iOT%20Systems"},
		{"HDL", "02.%20HDL"},
		{"CoolAutomation", "03.%20Coolautomation"},
		{"Matech", "04.%20Matech"},
		{"Moorgen", "05.%20Moorgen"},
		{"EasyCool", "06.%20EasyCool"},
		{"Yeelight", "07.%20Yeelight"},
	}
	rows := make([][]InlineKeyboardButton, 0, len(brands)+1)
	for _, b := range brands {
		rows = append(rows, []InlineKeyboardButton{{
			Text: "📁 " + b.label,
			URL:  publicDocsURL + "/" + b.folder,
		}})
	}
	rows = append(rows, []InlineKeyboardButton{{
		Text: "🗂 Вся база документации",
		URL:  publicDocsURL,
	}})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// resultsKeyboard renders search results as link buttons with a feedback row
// underneath.
func resultsKeyboard(links []resultLink) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(links)+1)
	for _, l := range links {
		rows = append(rows, []InlineKeyboardButton{{Text: l.Title, URL: l.URL}})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: "👍 Да", CallbackData: cbHelpfulYes},
		{Text: "👎 Нет", CallbackData: cbHelpfulNo},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// resultLink is one rendered search result button.
type resultLink struct {
	Title string
	URL   string
}

// notHelpfulKeyboard offers the escalation paths after a thumbs-down.
func notHelpfulKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "🔄 Искать заново", CallbackData: cbNewSearch}},
		{{Text: "🤖 Спросить ассистента", CallbackData: cbAskAI}},
		{{Text: "🧑‍💻 Оставить заявку", CallbackData: cbSupportForm}},
	}}
}

// aiAnswerKeyboard is shown under an assistant answer.
func aiAnswerKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "👍 Да", CallbackData: cbHelpfulYes},
			{Text: "👎 Нет", CallbackData: cbHelpfulNo},
		},
	}}
}

// supportKeyboard links straight to the support contact.
func supportKeyboard(supportURL string) *InlineKeyboardMarkup {
	rows := [][]InlineKeyboardButton{
		{{Text: "📝 Оставить заявку", CallbackData: cbSupportForm}},
	}
	if supportURL != "" {
		rows = append(rows, []InlineKeyboardButton{{Text: "💬 Написать напрямую", URL: supportURL}})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// faqKeyboard lists the FAQ topics.
func faqKeyboard() *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(faqTopics))
	for _, topic := range faqTopics {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         topic.Title,
			CallbackData: cbFAQPrefix + topic.Key,
		}})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
