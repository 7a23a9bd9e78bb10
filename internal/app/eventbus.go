package app

const TopicCategoryCreated = "category:created"
const TopicCategoryDeleted = "category:deleted"
const TopicExpenseCreated = "expense:created"
const TopicExpenseUpdated = "expense:updated"
const TopicExpenseStatusChanged = "expense:status-changed"
const TopicExpenseDeleted = "expense:deleted"
const TopicReceiptStored = "receipt:stored"
const TopicReceiptsDeleted = "receipt:deleted"
