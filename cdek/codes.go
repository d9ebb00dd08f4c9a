package cdek

import "strconv"

// StatusCode is carrier order lifecycle status.
// Values are wire stable.
type StatusCode int

const (
	//StatusRegistered order registered in carrier database
	StatusRegistered StatusCode = 1 //Создан
	//StatusDeleted order canceled by the shop before cargo arrived to sender storage
	StatusDeleted StatusCode = 2 //Удален
	//StatusAcceptedToSenderStorage arrived to storage in sender city
	StatusAcceptedToSenderStorage StatusCode = 3 //Принят на склад отправителя
	//StatusDelivered handed to recipient
	StatusDelivered StatusCode = 4 //Вручен
	//StatusReturned recipient refused, returning to the shop
	StatusReturned StatusCode = 5 //Не вручен, возврат
	//StatusIssuedToSendFromSenderStorage consolidated and prepared to send in sender city
	StatusIssuedToSendFromSenderStorage StatusCode = 6 //Выдан на отправку в г.-отправителе
	//StatusIssuedToShipperInSenderStorage handed to shipper in sender city
	StatusIssuedToShipperInSenderStorage StatusCode = 7 //Сдан перевозчику в г.-отправителе
	//StatusSentToReceiverCity on the way to receiver city
	StatusSentToReceiverCity StatusCode = 8 //Отправлен в г.-получатель
	//StatusReceivedInReceiverCity met in receiver city
	StatusReceivedInReceiverCity StatusCode = 9 //Встречен в г.-получателе
	//StatusAcceptedToReceiverStorage arrived to receiver city storage, waits for door delivery
	StatusAcceptedToReceiverStorage StatusCode = 10 //Принят на склад доставки
	//StatusIssuedToDeliver handed to courier
	StatusIssuedToDeliver StatusCode = 11 //Выдан на доставку
	//StatusAcceptedToReceiverStoragePosteRestante arrived to receiver city storage, waits for pickup
	StatusAcceptedToReceiverStoragePosteRestante StatusCode = 12 //Принят на склад до востребования
	//StatusAcceptedToTransitStorage arrived to transit city storage
	StatusAcceptedToTransitStorage StatusCode = 13 //Принят на склад транзита
	//StatusReturnedToSenderStorage returned to sender city storage, shipper did not take it
	StatusReturnedToSenderStorage StatusCode = 16 //Возвращен на склад отправителя
	//StatusReturnedToTransitStorage returned to transit city storage
	StatusReturnedToTransitStorage StatusCode = 17 //Возвращен на склад транзита
	//StatusReturnedToReceiverStorage delivery failed, waits for next attempt
	StatusReturnedToReceiverStorage StatusCode = 18 //Возвращен на склад доставки
	//StatusIssuedToSendFromTransitStorage prepared to send in transit city
	StatusIssuedToSendFromTransitStorage StatusCode = 19 //Выдан на отправку в г.-транзите
	//StatusIssuedToShipperInTransitStorage handed to shipper in transit city
	StatusIssuedToShipperInTransitStorage StatusCode = 20 //Сдан перевозчику в г.-транзите
	//StatusSentToTransitCity on the way to transit city
	StatusSentToTransitCity StatusCode = 21 //Отправлен в г.-транзит
	//StatusReceivedInTransitCity met in transit city
	StatusReceivedInTransitCity StatusCode = 22 //Встречен в г.-транзите
)

var statusNames = map[StatusCode]string{
	StatusRegistered:                             "registered",
	StatusDeleted:                                "deleted",
	StatusAcceptedToSenderStorage:                "accepted-to-sender-storage",
	StatusDelivered:                              "delivered",
	StatusReturned:                               "returned",
	StatusIssuedToSendFromSenderStorage:          "issued-from-sender-storage",
	StatusIssuedToShipperInSenderStorage:         "issued-to-shipper-sender",
	StatusSentToReceiverCity:                     "sent-to-receiver-city",
	StatusReceivedInReceiverCity:                 "received-in-receiver-city",
	StatusAcceptedToReceiverStorage:              "accepted-to-receiver-storage",
	StatusIssuedToDeliver:                        "issued-to-deliver",
	StatusAcceptedToReceiverStoragePosteRestante: "accepted-to-receiver-storage-poste-restante",
	StatusAcceptedToTransitStorage:               "accepted-to-transit-storage",
	StatusReturnedToSenderStorage:                "returned-to-sender-storage",
	StatusReturnedToTransitStorage:               "returned-to-transit-storage",
	StatusReturnedToReceiverStorage:              "returned-to-receiver-storage",
	StatusIssuedToSendFromTransitStorage:         "issued-from-transit-storage",
	StatusIssuedToShipperInTransitStorage:        "issued-to-shipper-transit",
	StatusSentToTransitCity:                      "sent-to-transit-city",
	StatusReceivedInTransitCity:                  "received-in-transit-city",
}

// String returns status name, unknown codes are printed as number.
func (c StatusCode) String() string {
	if n, ok := statusNames[c]; ok {
		return n
	}
	return "status(" + strconv.Itoa(int(c)) + ")"
}

// Known reports whether c is in carrier enumeration.
func (c StatusCode) Known() bool {
	_, ok := statusNames[c]
	return ok
}

// Final reports whether order lifecycle is over.
func (c StatusCode) Final() bool {
	return c == StatusDelivered || c == StatusReturned || c == StatusDeleted
}

// ServiceCode is additional service type for AddService.
type ServiceCode int

const (
	//ServiceInsurance is charged automatically, carrier rejects it in AddService
	ServiceInsurance ServiceCode = 2 //Страхование
	//ServiceDeliveryInHolidays delivery on weekends and holidays
	ServiceDeliveryInHolidays ServiceCode = 3 //Доставка в выходной день
	//ServiceWithdrawalInSenderCity pickup in sender city for "from storage" tariffs
	ServiceWithdrawalInSenderCity ServiceCode = 16 //Забор в городе отправителе
	//ServiceDeliveryInRecipientCity delivery in recipient city for "to storage" tariffs
	ServiceDeliveryInRecipientCity ServiceCode = 17 //Доставка в городе получателе
	//ServiceFittingAtHome courier waits 30 minutes while recipient tries items on
	ServiceFittingAtHome ServiceCode = 30 //Примерка на дому
	//ServicePartlyDelivery recipient may buy only part of the order
	ServicePartlyDelivery ServiceCode = 36 //Частичная доставка
	//ServiceItemsInspection recipient may open the parcel before payment
	ServiceItemsInspection ServiceCode = 37 //Осмотр вложения
)

var serviceNames = map[ServiceCode]string{
	ServiceInsurance:               "insurance",
	ServiceDeliveryInHolidays:      "holiday-delivery",
	ServiceWithdrawalInSenderCity:  "pickup-at-sender",
	ServiceDeliveryInRecipientCity: "delivery-at-receiver",
	ServiceFittingAtHome:           "home-fitting",
	ServicePartlyDelivery:          "partial-delivery",
	ServiceItemsInspection:         "contents-inspection",
}

func (c ServiceCode) String() string {
	if n, ok := serviceNames[c]; ok {
		return n
	}
	return "service(" + strconv.Itoa(int(c)) + ")"
}

// Known reports whether c is in carrier enumeration.
func (c ServiceCode) Known() bool {
	_, ok := serviceNames[c]
	return ok
}
