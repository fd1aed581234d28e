package bot

// Static reply texts. HTML parse mode is used throughout, so user-supplied
// fragments must go through escapeHTML before interpolation.

const msgStart = `👋 Здравствуйте! Я бот технической поддержки <b>iOT Systems</b>.

Помогу найти документацию по оборудованию HDL, Buspro, Matech, Yeelight, EasyCool, CoolAutomation и Moorgen.

Просто напишите, что ищете, например:
• <i>кабель knx</i>
• <i>паспорт на реле hdl</i>
• <i>как подключить алису</i>`

const msgSearchPrompt = `🔍 Напишите название оборудования или документа, который нужно найти.`

const msgDocs = `📚 База документации по брендам:`

const msgCourses = `🎓 Обучающие материалы и курсы по оборудованию:`

const msgSupportIntro = `🧑‍💻 Чтобы мы могли помочь, оставьте заявку или напишите нам напрямую.`

const msgNothingFound = `😔 По вашему запросу ничего не нашлось.

Попробуйте переформулировать или спросите ассистента.`

const msgResultsHeader = `Вот что удалось найти:`

const msgResultsFeedback = `Эта информация помогла?`

const msgTechnicalOnlyNudge = `ℹ️ Нашлись только технические паспорта. Если вопрос про настройку или интеграцию, попробуйте уточнить запрос, например <i>«интеграция hdl с алисой»</i>.`

const msgHelpfulThanks = `👍 Отлично! Если понадобится ещё что-то, просто напишите.`

const msgNotHelpful = `Жаль, что не помогло. Что сделаем дальше?`

const msgNewSearch = `🔄 Напишите новый запрос.`

const msgAskAIThinking = `🤖 Секунду, думаю над ответом...`

const msgAIUnavailable = `😔 Ассистент сейчас недоступен. Попробуйте позже или оставьте заявку в поддержку.`

const msgAIRateLimited = `⏳ Ассистент перегружен. Подождите минуту и попробуйте ещё раз.`

const msgFormName = `📝 Как к вам обращаться? Напишите имя.`

const msgFormPhone = `📞 Укажите номер телефона: 10 цифр без +7, например <i>9161234567</i>.`

const msgFormPhoneInvalid = `⚠️ Нужно ровно 10 цифр без +7, например <i>9161234567</i>. Попробуйте ещё раз.`

const msgFormDone = `✅ Заявка отправлена! Мы свяжемся с вами в ближайшее время.`

const msgFormDeliveryFailed = `⚠️ Не удалось передать заявку автоматически. Напишите нам напрямую, пожалуйста.`

const msgBroadcastPrompt = `📣 Отправьте текст рассылки одним сообщением.`

const msgBroadcastDone = `✅ Рассылка отправлена.`

const msgNotAdmin = `Эта команда доступна только администраторам.`

// faqTopics drive the FAQ inline menu. Answers are HTML.
var faqTopics = []struct {
	Key    string
	Title  string
	Answer string
}{
	{
		Key:   "docs",
		Title: "Где вся документация?",
		Answer: `Вся база документации доступна по ссылке:
` + publicDocsURL + `

Внутри папки разложены по брендам.`,
	},
	{
		Key:   "knx_cable",
		Title: "Какой кабель нужен для KNX?",
		Answer: `Для шины KNX используется кабель <b>YE00820 J-Y(St)Y 2x2x0,8</b>.
Напишите «кабель knx», и я пришлю документы на него.`,
	},
	{
		Key:   "alice",
		Title: "Как подключить Яндекс Алису?",
		Answer: `Инструкции по интеграции с голосовым помощником собраны в отдельной папке.
Напишите «как подключить алису», и я пришлю ссылку.`,
	},
	{
		Key:   "order",
		Title: "Как заказать оборудование?",
		Answer: `По вопросам заказа и наличия свяжитесь с поддержкой кнопкой «Оставить заявку», менеджер ответит в рабочее время.`,
	},
}

// greetings the bot answers with the start message instead of searching.
var greetingWords = []string{
	"привет", "здравствуй", "здравствуйте", "добрый день",
	"добрый вечер", "доброе утро", "hello", "hi", "start",
}
