package i18n

// T looks up a dialogue string. Missing entries fall back to French, then
// to the key itself so a typo is visible instead of silent.
func T(lang Language, key string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := catalog[French][key]; ok {
		return s
	}
	return key
}

var catalog = map[Language]map[string]string{
	French: {
		"speech_language_question": "Bienvenue. Quelle langue préférez-vous? Dites français, anglais ou arabe.",
		"speech_say_language":      "Dites français, anglais ou arabe.",
		"speech_language_set":      "Langue définie en",
		"speech_not_understood":    "Je n'ai pas compris.",
		"speech_nothing_heard":     "Je n'ai rien entendu.",
		"speech_welcome":           "Bienvenue",
		"speech_open_camera":       "Voulez-vous ouvrir la caméra pour vérifier votre vision? Dites oui ou non.",
		"speech_say_yes_no":        "Dites oui pour ouvrir la caméra ou non pour passer.",
		"speech_vision_passed":     "Vision passée.",
		"speech_features_available": "Voici les fonctionnalités disponibles: %s. Quelle section voulez-vous visiter?",
		"speech_say_sections":      "Dites Banque ou Shopping.",
		"speech_return_main_menu":  "Retour au menu principal.",
		"speech_welcome_to":        "Bienvenue dans",
		"speech_section_options":   "Voici les options: %s. Dites une option ou retour pour revenir.",
		"speech_say_option_or_return": "Dites une autre option ou retour pour revenir.",
		"speech_opened":            "ouvert.",
		"speech_use_buttons":       "Assistant terminé. Utilisez les boutons pour naviguer.",
		"speech_mic_unavailable":   "Reconnaissance vocale non disponible. Utilisez les boutons.",
		"speech_mic_denied":        "Micro non autorisé. Utilisez les boutons.",

		"vision_opening_camera":   "Ouverture de la caméra.",
		"vision_camera_opened":    "Caméra ouverte. Dites oui pour analyser votre vision.",
		"vision_say_yes_analyze":  "Dites oui pour lancer l'analyse.",
		"vision_analysis_result":  "Résultat:",
		"vision_say_close_or_keep": "Dites fermer pour fermer la caméra ou non pour la garder ouverte.",
		"vision_camera_closed":    "La caméra est fermée.",
		"vision_confirm_result":   "Confirmez-vous le résultat?",
		"vision_say_yes_confirm":  "Dites oui pour confirmer ou non pour annuler.",
		"vision_result_confirmed": "Résultat confirmé.",
		"vision_result_not_confirmed": "Résultat non confirmé.",
		"vision_camera_open":      "Caméra reste ouverte.",
		"vision_cannot_open":      "Impossible d'ouvrir la caméra.",
		"vision_analysis_skipped": "Analyse passée.",
		"vision_analysis_failed":  "L'analyse a échoué.",
		"vision_normal":           "Vision normale",
		"vision_low":              "Vision faible",
		"vision_very_low":         "Vision très faible",
		"vision_blind_detected":   "Non-voyant détecté",

		"banking_balance_text":    "Votre solde actuel est :",
		"banking_history_spoken":  "Affichage de %d transactions.",
		"tx_ask_recipient":        "À qui voulez-vous envoyer de l'argent? Dites le nom du destinataire.",
		"tx_ask_amount":           "Très bien. Quel montant voulez-vous envoyer à %s? Dites le montant.",
		"tx_amount_not_understood": "Je n'ai pas compris le montant. Répétez le montant, par exemple: 150 dollars ou cinquante dollars.",
		"tx_ask_description":      "À quoi correspond ce paiement? Décrivez brièvement la transaction.",
		"tx_summary":              "Parfait. Je confirme: vous voulez envoyer %.2f à %s pour %s. Dites confirmer pour valider, ou annuler pour abandonner.",
		"tx_say_confirm_cancel":   "Dites confirmer pour valider la transaction, ou annuler pour abandonner.",
		"tx_insufficient_funds":   "Fonds insuffisants. Votre solde actuel est de %.2f. Transaction annulée.",
		"tx_success":              "Transaction réussie. %.2f envoyés à %s. Votre nouveau solde est de %.2f.",
		"tx_canceled":             "Transaction annulée.",
		"tx_abandoned":            "Transaction abandonnée.",
		"tx_done_resume":          "Transaction terminée. Dites une autre option ou retour pour revenir.",
	},
	English: {
		"speech_welcome":           "Welcome",
		"speech_open_camera":       "Do you want to open the camera to check your vision? Say yes or no.",
		"speech_say_yes_no":        "Say yes to open the camera or no to skip.",
		"speech_vision_passed":     "Vision skipped.",
		"speech_not_understood":    "I didn't understand.",
		"speech_nothing_heard":     "I didn't hear anything.",
		"speech_features_available": "Here are the available features: %s. Which section do you want to visit?",
		"speech_say_sections":      "Say Banking or Shopping.",
		"speech_return_main_menu":  "Return to main menu.",
		"speech_welcome_to":        "Welcome to",
		"speech_section_options":   "Here are the options: %s. Say an option or back to return.",
		"speech_say_option_or_return": "Say another option or back to return.",
		"speech_opened":            "opened.",
		"speech_use_buttons":       "Assistant finished. Use the buttons to navigate.",
		"speech_mic_unavailable":   "Speech recognition unavailable. Use the buttons.",
		"speech_mic_denied":        "Microphone not allowed. Use the buttons.",

		"vision_opening_camera":   "Opening camera.",
		"vision_camera_opened":    "Camera opened. Say yes to analyze your vision.",
		"vision_say_yes_analyze":  "Say yes to start the analysis.",
		"vision_analysis_result":  "Result:",
		"vision_say_close_or_keep": "Say close to close the camera or no to keep it open.",
		"vision_camera_closed":    "Camera is closed.",
		"vision_confirm_result":   "Do you confirm the result?",
		"vision_say_yes_confirm":  "Say yes to confirm or no to cancel.",
		"vision_result_confirmed": "Result confirmed.",
		"vision_result_not_confirmed": "Result not confirmed.",
		"vision_camera_open":      "Camera stays open.",
		"vision_cannot_open":      "Cannot open camera.",
		"vision_analysis_skipped": "Analysis skipped.",
		"vision_analysis_failed":  "Analysis failed.",
		"vision_normal":           "Normal vision",
		"vision_low":              "Low vision",
		"vision_very_low":         "Very low vision",
		"vision_blind_detected":   "Blind person detected",

		"banking_balance_text":    "Your current balance is:",
		"banking_history_spoken":  "Showing %d transactions.",
		"tx_ask_recipient":        "Who would you like to send money to? Please say the recipient's name.",
		"tx_ask_amount":           "Great! How much would you like to send to %s? Please say the amount.",
		"tx_amount_not_understood": "I couldn't understand the amount. Please say the amount again, for example: 150 dollars or fifty dollars.",
		"tx_ask_description":      "What is this payment for? Please briefly describe the transaction.",
		"tx_summary":              "Perfect! Let me confirm: you want to send %.2f to %s for %s. Say confirm to complete the transaction, or say cancel to abort.",
		"tx_say_confirm_cancel":   "Please say confirm to complete the transaction, or cancel to abort.",
		"tx_insufficient_funds":   "Insufficient funds. Your current balance is %.2f. Transaction canceled.",
		"tx_success":              "Transaction successful. Sent %.2f to %s. Your new balance is %.2f.",
		"tx_canceled":             "Transaction canceled.",
		"tx_abandoned":            "Transaction abandoned.",
		"tx_done_resume":          "Transaction complete. Say another option or back to return.",
	},
	Arabic: {
		"speech_welcome":           "مرحباً",
		"speech_open_camera":       "هل تريد فتح الكاميرا للتحقق من رؤيتك؟ قل نعم أو لا.",
		"speech_say_yes_no":        "قل نعم لفتح الكاميرا أو لا للتخطي.",
		"speech_vision_passed":     "تم تخطي الرؤية.",
		"speech_not_understood":    "لم أفهم.",
		"speech_nothing_heard":     "لم أسمع شيئاً.",
		"speech_features_available": "هذه هي الميزات المتاحة: %s. أي قسم تريد زيارته؟",
		"speech_say_sections":      "قل الخدمات المصرفية أو التسوق.",
		"speech_return_main_menu":  "العودة إلى القائمة الرئيسية.",
		"speech_welcome_to":        "مرحباً بك في",
		"speech_section_options":   "هذه هي الخيارات: %s. قل خياراً أو رجوع للعودة.",
		"speech_say_option_or_return": "قل خياراً آخر أو رجوع للعودة.",
		"speech_opened":            "تم الفتح.",
		"speech_use_buttons":       "انتهى المساعد. استخدم الأزرار للتنقل.",
		"speech_mic_unavailable":   "التعرف على الصوت غير متاح. استخدم الأزرار.",
		"speech_mic_denied":        "الميكروفون غير مسموح به. استخدم الأزرار.",

		"vision_opening_camera":   "جارٍ فتح الكاميرا.",
		"vision_camera_opened":    "الكاميرا مفتوحة. قل نعم لتحليل رؤيتك.",
		"vision_say_yes_analyze":  "قل نعم لبدء التحليل.",
		"vision_analysis_result":  "النتيجة:",
		"vision_say_close_or_keep": "قل إغلاق لإغلاق الكاميرا أو لا للإبقاء عليها مفتوحة.",
		"vision_camera_closed":    "الكاميرا مغلقة.",
		"vision_confirm_result":   "هل تؤكد النتيجة؟",
		"vision_say_yes_confirm":  "قل نعم للتأكيد أو لا للإلغاء.",
		"vision_result_confirmed": "تم تأكيد النتيجة.",
		"vision_result_not_confirmed": "لم يتم تأكيد النتيجة.",
		"vision_camera_open":      "الكاميرا تبقى مفتوحة.",
		"vision_cannot_open":      "لا يمكن فتح الكاميرا.",
		"vision_analysis_skipped": "تم تخطي التحليل.",
		"vision_analysis_failed":  "فشل التحليل.",
		"vision_normal":           "رؤية عادية",
		"vision_low":              "رؤية ضعيفة",
		"vision_very_low":         "رؤية ضعيفة جداً",
		"vision_blind_detected":   "تم اكتشاف شخص كفيف",

		"banking_balance_text":    "رصيدك الحالي هو:",
		"banking_history_spoken":  "عرض %d معاملة.",
		"tx_ask_recipient":        "إلى من تريد إرسال المال؟ قل اسم المستلم.",
		"tx_ask_amount":           "حسناً. ما المبلغ الذي تريد إرساله إلى %s؟ قل المبلغ.",
		"tx_amount_not_understood": "لم أفهم المبلغ. كرر المبلغ، مثلاً: 150 دولاراً أو خمسون دولاراً.",
		"tx_ask_description":      "ما الغرض من هذا الدفع؟ صف المعاملة باختصار.",
		"tx_summary":              "ممتاز. للتأكيد: تريد إرسال %.2f إلى %s مقابل %s. قل تأكيد لإتمام المعاملة، أو إلغاء للتراجع.",
		"tx_say_confirm_cancel":   "قل تأكيد لإتمام المعاملة، أو إلغاء للتراجع.",
		"tx_insufficient_funds":   "رصيد غير كافٍ. رصيدك الحالي هو %.2f. تم إلغاء المعاملة.",
		"tx_success":              "تمت المعاملة بنجاح. تم إرسال %.2f إلى %s. رصيدك الجديد هو %.2f.",
		"tx_canceled":             "تم إلغاء المعاملة.",
		"tx_abandoned":            "تم التخلي عن المعاملة.",
		"tx_done_resume":          "اكتملت المعاملة. قل خياراً آخر أو رجوع للعودة.",
	},
}
