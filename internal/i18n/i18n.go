// Package i18n is a pure lookup of user-facing API messages over a
// static mapping. It lives outside the core; components never depend
// on translated strings for their behaviour.
package i18n

import "github.com/libris-app/libris/internal/core/domain"

var messages = map[domain.Locale]map[string]string{
	domain.LocaleArabic: {
		"book_added_successfully":    "تم إضافة الكتاب بنجاح!",
		"book_deleted_successfully":  "تم حذف الكتاب بنجاح!",
		"book_deleted_file_missing":  "تم حذف الكتاب من قاعدة البيانات، لكن الملف غير موجود.",
		"no_file_selected":           "لم يتم اختيار ملف",
		"invalid_file_type":          "نوع ملف غير صالح. يُسمح فقط بملفات PDF.",
		"max_file_size":              "الحد الأقصى لحجم الملف: 16 ميجابايت",
		"invalid_image_type":         "نوع الصورة غير صالح. المسموح: PNG, JPG, GIF, WEBP",
		"invalid_image_file":         "ملف الصورة غير صالح",
		"image_too_large":            "الصورة كبيرة جدًا. الحد الأقصى 5 ميجابايت",
		"file_not_found":             "الملف غير موجود",
		"book_not_found":             "الكتاب غير موجود",
		"please_log_in":              "يرجى تسجيل الدخول للوصول إلى هذه الصفحة",
		"please_enter_name":          "يرجى إدخال اسمك للمتابعة",
		"please_enter_search_query":  "يرجى إدخال استعلام البحث",
		"error_getting_ai_response":  "خطأ في الحصول على استجابة الذكاء الاصطناعي",
		"error_generating_abstract":  "خطأ في إنشاء المستخلص",
		"error_generating_annotation": "خطأ في إنشاء التهميش",
		"invalid_input":              "إدخال غير صالح",
		"internal_error":             "حدث خطأ غير متوقع",
	},
	domain.LocaleEnglish: {
		"book_added_successfully":    "Book added successfully!",
		"book_deleted_successfully":  "Book deleted successfully!",
		"book_deleted_file_missing":  "Book deleted from database, but file was not found.",
		"no_file_selected":           "No file selected",
		"invalid_file_type":          "Invalid file type. Only PDF files are allowed.",
		"max_file_size":              "Maximum file size: 16MB",
		"invalid_image_type":         "Invalid image type. Allowed: PNG, JPG, GIF, WEBP",
		"invalid_image_file":         "Invalid image file",
		"image_too_large":            "Image file too large. Maximum is 5MB",
		"file_not_found":             "File not found",
		"book_not_found":             "Book not found",
		"please_log_in":              "Please log in to access this page",
		"please_enter_name":          "Please enter your name to continue",
		"please_enter_search_query":  "Please enter a search query",
		"error_getting_ai_response":  "Error getting AI response",
		"error_generating_abstract":  "Error generating abstract",
		"error_generating_annotation": "Error generating annotation",
		"invalid_input":              "Invalid input",
		"internal_error":             "An unexpected error occurred",
	},
}

// T returns the message for key in the given locale. Unknown keys
// return the key itself so missing translations are visible, not
// silent.
func T(key string, locale domain.Locale) string {
	table, ok := messages[locale]
	if !ok {
		table = messages[domain.LocaleArabic]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	return key
}
